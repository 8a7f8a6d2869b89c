package model

import (
	"context"

	"github.com/pagetable/pagetable/internal/model1"
)

// LoaderListener represents a loader listener.
type LoaderListener interface {
	// LoaderChanged notifies the loader state changed.
	LoaderChanged(LoaderState)

	// LoaderFailed notifies a fetch failed.
	LoaderFailed(error)
}

// TableListener represents a table model listener.
type TableListener interface {
	// TableDataChanged notifies the model data changed.
	TableDataChanged(*model1.TableData)

	// TableLoadFailed notifies the load failed.
	TableLoadFailed(error)
}

// Pager is the part of the loader the scroll sentinel drives.
type Pager interface {
	// State returns the current loader state.
	State() LoaderState

	// FetchNextPage requests the next page if one exists and nothing is in flight.
	FetchNextPage(context.Context) bool
}

// Tabular defines the interface for a table data model that loads pages.
type Tabular interface {
	Pager

	// Peek returns a snapshot of the current data.
	Peek() *model1.TableData

	// Columns returns the column descriptors.
	Columns() model1.Columns

	// SetSearch changes the search text of the query.
	SetSearch(context.Context, string)

	// Watch loads the first page and starts the refresh loop.
	Watch(context.Context) error

	// Refresh re-fetches the loaded pages.
	Refresh(context.Context) bool

	// Stop stops the refresh loop.
	Stop()

	// AddListener registers a table listener.
	AddListener(TableListener)

	// RemoveListener unregisters a table listener.
	RemoveListener(TableListener)
}
