// Package guard holds the constructor guard embedded by domain objects and
// use-case commands so that zero-value instances can be told apart from
// values built by a constructor.
package guard
