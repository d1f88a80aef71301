package schemas

type RegisterRequest struct {
	Nick string `json:"nick"`
	PIN  string `json:"pin"`
}

type LoginRequest struct {
	Nick string `json:"nick"`
	PIN  string `json:"pin"`
}

type UserResponse struct {
	ID   int    `json:"id"`
	Nick string `json:"nick"`
}
