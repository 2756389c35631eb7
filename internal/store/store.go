// Package store bridges the staged-edit workflow to the hosted live store.
// Collections are whole JSON values: the catalog is committed as one
// full-overwrite write (last-writer-wins, no merge), while inquiries are
// fine-grained per-record writes keyed by inquiry id.
package store

import (
	"context"

	"fastenhub/internal/domain"
)

// CategoriesFunc receives the full ordered category sequence on every remote
// change, including the initial read. An absent collection arrives as an
// empty slice.
type CategoriesFunc func([]domain.Category)

// InquiriesFunc receives the full inquiry set on every remote change.
type InquiriesFunc func([]domain.Inquiry)

// Store is the remote sync adapter. Subscriptions return a cancel func the
// caller must invoke on teardown to free the listener; write failures
// propagate to the caller, which is responsible for surfacing them.
type Store interface {
	SubscribeCategories(ctx context.Context, fn CategoriesFunc) (func(), error)
	// SyncCategories replaces the entire remote catalog in one write.
	SyncCategories(ctx context.Context, cats []domain.Category) error

	SubscribeInquiries(ctx context.Context, fn InquiriesFunc) (func(), error)
	SaveInquiry(ctx context.Context, inq domain.Inquiry) error
	DeleteInquiry(ctx context.Context, id string) error
}
