package model

type EncodeRequestBody struct {
	Tokens []string `json:"tokens"`
}

type EncodeResponse struct {
	IDs []int `json:"ids"`
}

type VocabStatsResponse struct {
	Size          int      `json:"size"`
	SpecialTokens []string `json:"special_tokens"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
