package apimodels

type Response struct {
	Status  bool        `json:"status"`            //результат обработки
	Message string      `json:"message,omitempty"` //сообщение для пользователя
	Data    interface{} `json:"data,omitempty"`    //данные ответа
}

func NewError(message string) Response {
	return Response{
		Status:  false,
		Message: message,
	}
}

func NewResponse(data interface{}) Response {
	return Response{
		Status: true,
		Data:   data,
	}
}

func NewMessageResponse(message string, data interface{}) Response {
	return Response{
		Status:  true,
		Message: message,
		Data:    data,
	}
}

// ListFilter фасеты списков, все заданные условия объединяются по И
type ListFilter struct {
	CompanyID uint   `query:"company_id" json:"company_id,omitempty"`
	Month     int    `query:"month" json:"month,omitempty"`
	Year      int    `query:"year" json:"year,omitempty"`
	Status    string `query:"status" json:"status,omitempty"`
	Search    string `query:"search" json:"search,omitempty"`
}

type CreatedID struct {
	ID uint `json:"id"`
}
