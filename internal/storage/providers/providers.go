package providers

import "github.com/jackc/pgx/v5/pgxpool"

type Providers struct {
	FormProvider     *FormProvider
	ResponseProvider *ResponseProvider
}

func New(db *pgxpool.Pool) *Providers {
	return &Providers{
		FormProvider:     NewFormProvider(db),
		ResponseProvider: NewResponseProvider(db),
	}
}
