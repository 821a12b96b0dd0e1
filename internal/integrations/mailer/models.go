package mailer

// TreatmentLine строка процедуры в письме-подтверждении
type TreatmentLine struct {
	Name      string  `json:"name"`
	StartTime string  `json:"startTime"` // "10:00"
	Price     float64 `json:"price"`
}

// BookingConfirmation данные письма о подтверждении записи
type BookingConfirmation struct {
	Email          string          `json:"email"`
	BookingDate    string          `json:"bookingDate"` // "2025-10-15"
	Treatments     []TreatmentLine `json:"treatments"`
	TotalPrice     float64         `json:"totalPrice"`
	DiscountType   string          `json:"discountType,omitempty"`
	DiscountAmount float64         `json:"discountAmount,omitempty"`
	FinalPrice     float64         `json:"finalPrice"`
}

// BookingCancellation данные письма об отмене записи
type BookingCancellation struct {
	Email       string `json:"email"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	Treatment   string `json:"treatment"`
	Reason      string `json:"reason,omitempty"`
}

// ErrorResponse модель ошибки от сервиса рассылки
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
