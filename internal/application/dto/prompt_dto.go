package dto

// PromptRequest mensaje del cuadro de prompt: JSON de comando o texto libre.
type PromptRequest struct {
	Message string `json:"message"`
}

// PromptResponse resultado estructurado del intérprete.
// message se muestra tal cual al usuario; result lleva los datos del comando
// (o null en respuestas conversacionales); error es el kind de la taxonomía
// cuando ok es false.
type PromptResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
	Result  any    `json:"result"`
	Error   *string `json:"error"`
}
