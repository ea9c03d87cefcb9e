// Package compose builds the Telegram notification text for a lead
// submission. Templates are fixed per form kind; anything unrecognized
// gets a generic labeled dump of the submitted fields.
package compose

import (
	"strings"

	"github.com/tasaheel/leads-api/internal/models"
	"github.com/tasaheel/leads-api/pkg/markup"
)

const noServicesLine = "لا يوجد خدمات إضافية"

// Message renders the summary notification for a submission plus the
// per-category upload outcomes. Every interpolated value is escaped
// exactly once.
func Message(sub *models.LeadSubmission, outcomes map[models.AttachmentCategory][]models.UploadOutcome) string {
	var b strings.Builder
	b.WriteString("🎉 <b>طلب جديد - " + markup.Escape(sub.Source) + "</b> 🎉\n\n")

	switch models.ParseFormKind(sub.Source) {
	case models.FormRecruitment, models.FormInjaz:
		writeRecruitment(&b, sub, outcomes)
	case models.FormTasaheel:
		writeTasaheel(&b, sub)
	default:
		writeGeneric(&b, sub)
	}

	return b.String()
}

func writeRecruitment(b *strings.Builder, sub *models.LeadSubmission, outcomes map[models.AttachmentCategory][]models.UploadOutcome) {
	writeField(b, "👤", "العميل", sub, "clientName")
	writeField(b, "📞", "واتساب", sub, "whatsappNumber")
	if phone, ok := sub.Field("phoneNumber"); ok {
		b.WriteString("☎️ <b>هاتف:</b> " + markup.Escape(phone) + "\n")
	}

	b.WriteString("\n🛠️ <b>الخدمات:</b>\n")
	b.WriteString(servicesSection(sub))
	b.WriteString("\n\n📂 <b>المستندات المرفقة:</b>\n")

	forms := len(outcomes[models.CategoryRecruitmentForm]) > 0 ||
		len(outcomes[models.CategoryVisaDocument]) > 0
	passports := len(outcomes[models.CategoryPassportImage]) > 0
	b.WriteString("• الاستقدام/إنجاز: " + attachedOrNone(forms) + "\n")
	b.WriteString("• صور الجوازات: " + attachedOrNone(passports))

	// Lost documents are called out by name; successful ones already
	// arrived in the chat and stay summarized.
	for _, cat := range models.Categories() {
		for _, out := range outcomes[cat] {
			if !out.OK {
				b.WriteString("\n❌ فشل رفع: " + markup.Escape(out.FileName))
			}
		}
	}
}

func writeTasaheel(b *strings.Builder, sub *models.LeadSubmission) {
	writeField(b, "👤", "العميل", sub, "fullName")
	writeField(b, "📞", "واتساب", sub, "whatsapp")
	writeField(b, "📅", "الموعد", sub, "appointmentDate")
	writeField(b, "📍", "المركز", sub, "center")
	lastField(b, "🏷️", "التأشيرة", sub, "visaType")
}

// writeGeneric dumps every submitted field as a labeled line, in receipt
// order, skipping the source discriminator itself.
func writeGeneric(b *strings.Builder, sub *models.LeadSubmission) {
	for _, name := range sub.FieldOrder {
		if name == "source" {
			continue
		}
		value := sub.Fields[name]
		if name == "selectedServices" {
			sel := models.ParseServices(value)
			if sel.IsList {
				value = strings.Join(sel.Items, "، ")
			}
		}
		b.WriteString("<b>" + markup.Escape(Label(name)) + ":</b> " + markup.Escape(value) + "\n")
	}
}

// servicesSection renders selectedServices: one bulleted line per element
// of a JSON array, one bulleted line with the raw value otherwise, or the
// fixed no-services line when absent.
func servicesSection(sub *models.LeadSubmission) string {
	raw, ok := sub.Field("selectedServices")
	if !ok {
		return noServicesLine
	}

	sel := models.ParseServices(raw)
	if !sel.IsList {
		return "• " + markup.Escape(sel.Raw)
	}

	lines := make([]string, 0, len(sel.Items))
	for _, item := range sel.Items {
		lines = append(lines, "• "+markup.Escape(item))
	}
	return strings.Join(lines, "\n")
}

func writeField(b *strings.Builder, icon, label string, sub *models.LeadSubmission, name string) {
	value, ok := sub.Field(name)
	b.WriteString(icon + " <b>" + label + ":</b> " + markup.Field(value, ok) + "\n")
}

func lastField(b *strings.Builder, icon, label string, sub *models.LeadSubmission, name string) {
	value, ok := sub.Field(name)
	b.WriteString(icon + " <b>" + label + ":</b> " + markup.Field(value, ok))
}

func attachedOrNone(attached bool) string {
	if attached {
		return "مرفق"
	}
	return "لا يوجد"
}
