package accounting_test

import (
	"context"
	"fmt"

	"github.com/jhoicas/contabilizador/internal/domain"
	"github.com/jhoicas/contabilizador/internal/domain/entity"
)

type fakeTariffs struct {
	rows  map[string]entity.ICATariff
	err   error
	panic bool
}

func (f *fakeTariffs) Tariff(_ context.Context, ciiu string) (entity.ICATariff, error) {
	if f.panic {
		panic("tabla corrupta")
	}
	if f.err != nil {
		return entity.ICATariff{}, f.err
	}
	row, ok := f.rows[ciiu]
	if !ok {
		return entity.ICATariff{}, fmt.Errorf("CIIU %s: %w", ciiu, domain.ErrTariffNotFound)
	}
	return row, nil
}

type fakePairs struct {
	pairs *entity.PayablePairs
	err   error
}

func (f *fakePairs) Pairs(context.Context) (*entity.PayablePairs, error) {
	return f.pairs, f.err
}

type fakeCatalog struct {
	codes map[string]struct{}
	err   error
}

func (f *fakeCatalog) Codes(context.Context) (map[string]struct{}, error) {
	return f.codes, f.err
}

func (f *fakeCatalog) Accounts(context.Context) ([]entity.Account, error) {
	out := make([]entity.Account, 0, len(f.codes))
	for c := range f.codes {
		out = append(out, entity.Account{Code: c})
	}
	return out, f.err
}

func catalogOf(codes ...string) *fakeCatalog {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[c] = struct{}{}
	}
	return &fakeCatalog{codes: m}
}
