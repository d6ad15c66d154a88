// Package all registers every built-in export backend with the storage
// factory. Import it for side effects:
//
//	import _ "oncoclean/internal/storage/all"
//
// after which storage.New and storage.EnsureTable accept the kinds
// "postgres", "mssql", "mysql" and "sqlite". A binary that needs only a
// subset can blank-import the individual backend packages instead.
package all

import (
	_ "oncoclean/internal/storage/mssql"
	_ "oncoclean/internal/storage/mysql"
	_ "oncoclean/internal/storage/postgres"
	_ "oncoclean/internal/storage/sqlite"
)
