package main

import (
	"github.com/frobware/prfilter/collection"
)

// SourceFactory creates the pull request source for a repository.
type SourceFactory func(repo string) (collection.Source, error)
