package dto

// SyncStats contadores de una sincronización; Total = Added + Updated.
type SyncStats struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}

// SyncResponse salida de POST /api/supplier/sync.
type SyncResponse struct {
	Message string    `json:"message"`
	Stats   SyncStats `json:"stats"`
}
