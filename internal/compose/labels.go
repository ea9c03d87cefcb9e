package compose

// fieldLabels maps known form field names to their display labels.
// Unknown fields render under their raw name.
var fieldLabels = map[string]string{
	"clientName":       "العميل",
	"fullName":         "العميل",
	"whatsappNumber":   "واتساب",
	"whatsapp":         "واتساب",
	"phoneNumber":      "هاتف",
	"visaType":         "التأشيرة",
	"center":           "المركز",
	"appointmentDate":  "الموعد",
	"serviceType":      "نوع الخدمة",
	"selectedServices": "الخدمات المختارة",
	"source":           "المصدر",
}

// Label resolves a field name to its display label, or returns the name
// itself when no mapping exists.
func Label(fieldName string) string {
	if label, ok := fieldLabels[fieldName]; ok {
		return label
	}
	return fieldName
}
