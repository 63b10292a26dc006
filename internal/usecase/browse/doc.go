// Package browse holds the stateful loaders behind the collection browser.
//
// CollectionList loads the collection catalog once on activation.
// CollectionDetail follows a Selection: every change of the selected
// collection re-fetches its schema and items, and the two results are
// published together. Observers receive immutable state snapshots.
package browse
