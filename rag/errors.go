package rag

import "errors"

// ErrRetrievalUnavailable indicates the backing store could not be reached.
// Callers treat it as an empty result rather than a fatal failure.
var ErrRetrievalUnavailable = errors.New("retrieval unavailable")
