package response

type Response struct {
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}
