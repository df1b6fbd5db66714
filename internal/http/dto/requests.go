package dto

// Dates travel as YYYY-MM-DD strings and ids as UUID strings; handlers parse
// them so malformed input is reported per field.

type CreateStoreRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CreateAreaRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type RegisterDeviceRequest struct {
	DeviceCode string  `json:"device_code,omitempty"` // generated when empty
	Name       *string `json:"name,omitempty"`
}

// SelfRegisterDeviceRequest is posted by a player after scanning an area QR code.
type SelfRegisterDeviceRequest struct {
	AreaID     string `json:"area_id"`
	DeviceCode string `json:"device_code,omitempty"`
}

type CreateCampaignRequest struct {
	StoreID     string  `json:"store_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Weight      int     `json:"weight,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateCampaignRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Weight      *int    `json:"weight,omitempty"`
	StartDate   *string `json:"start_date,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type SetCampaignAreasRequest struct {
	AreaIDs          []string `json:"area_ids"`
	RejectOnConflict bool     `json:"reject_on_conflict,omitempty"`
}

type AddMediaRequest struct {
	Type            string  `json:"type"` // image / video
	Filename        string  `json:"filename"`
	StoragePath     string  `json:"storage_path"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	SortOrder       *int    `json:"sort_order,omitempty"`
	MimeType        *string `json:"mime_type,omitempty"`
	FileSize        *int64  `json:"file_size,omitempty"`
}

type CheckConflictsRequest struct {
	AreaIDs           []string `json:"area_ids"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	ExcludeCampaignID *string  `json:"exclude_campaign_id,omitempty"`
}
