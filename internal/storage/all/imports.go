// Package all wires all built-in storage backends into the storage factory.
//
// This package exists purely for side effects: importing it (even as a blank
// import) runs the init functions of each concrete backend, which register
// their factories with the storage package. After importing it the following
// storage kinds are available at runtime:
//
//   - "sqlite"   (trackseed/internal/storage/sqlite)
//   - "postgres" (trackseed/internal/storage/postgres)
//   - "mssql"    (trackseed/internal/storage/mssql)
//   - "mysql"    (trackseed/internal/storage/mysql)
//
// Typical usage:
//
//	import _ "trackseed/internal/storage/all"
//
//	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: "app_data.db"})
//	if err != nil {
//	    // handle error
//	}
//	defer repo.Close()
package all

import (
	_ "trackseed/internal/storage/mssql"
	_ "trackseed/internal/storage/mysql"
	_ "trackseed/internal/storage/postgres"
	_ "trackseed/internal/storage/sqlite"
)
