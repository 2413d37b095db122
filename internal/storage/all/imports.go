// Package all wires every built-in storage backend into the storage factory.
//
// It exists purely for side effects: a blank import of this package runs the
// init functions of each concrete backend, which register their factories
// with the storage package. Binaries that want a subset of backends can blank
// import the individual backend packages instead.
package all

import (
	_ "oecdhw/internal/storage/mssql"
	_ "oecdhw/internal/storage/mysql"
	_ "oecdhw/internal/storage/postgres"
	_ "oecdhw/internal/storage/sqlite"
)
