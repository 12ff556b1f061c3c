package model

type MigrationHistory struct {
	Version   string `json:"version"`
	CreatedTs int64  `json:"created_ts"`
}

type UpsertMigrationHistory struct {
	Version string
}
