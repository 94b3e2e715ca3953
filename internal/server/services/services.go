// Package services contains the server-side business logic: identity,
// the item ledger, the assessment workflow, and the purchase engine.
package services

import "github.com/dmitrijs2005/sellegate/internal/dbx"

// withTx is a seam so tests can run transactional flows without a real
// database handle.
var withTx = dbx.WithTx
