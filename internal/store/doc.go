// Package store holds the observable application state shared by the shells.
//
// Each store wraps a Writable value; shells subscribe to it and re-render on
// change, while store methods drive the backend bridge and update the value.
package store
