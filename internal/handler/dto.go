package handler

type NewsResponse struct {
	Status  string         `json:"status"`
	Data    []NewsEntryDTO `json:"data"`
	Message string         `json:"message"`
}

type NewsEntryDTO struct {
	ID   int    `json:"id"`
	Word string `json:"word"`
	Size int    `json:"size"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
