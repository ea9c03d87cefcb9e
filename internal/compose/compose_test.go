package compose_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tasaheel/leads-api/internal/compose"
	"github.com/tasaheel/leads-api/internal/models"
)

func submission(source string, fields map[string]string) *models.LeadSubmission {
	if fields == nil {
		fields = map[string]string{}
	}
	fields["source"] = source
	order := make([]string, 0, len(fields))
	order = append(order, "source")
	for name := range fields {
		if name != "source" {
			order = append(order, name)
		}
	}
	return &models.LeadSubmission{
		Source:      source,
		Fields:      fields,
		FieldOrder:  order,
		Attachments: map[models.AttachmentCategory][]models.Attachment{},
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "العميل", compose.Label("clientName"))
	assert.Equal(t, "واتساب", compose.Label("whatsappNumber"))
	assert.Equal(t, "customField", compose.Label("customField"))
}

func TestMessage_RecruitmentNoFiles(t *testing.T) {
	sub := submission(models.SourceRecruitment, map[string]string{
		"clientName":     "Ali",
		"whatsappNumber": "0500000000",
	})

	text := compose.Message(sub, nil)

	assert.Contains(t, text, "🎉 <b>طلب جديد - نموذج الاستقدام</b> 🎉")
	assert.Contains(t, text, "👤 <b>العميل:</b> Ali")
	assert.Contains(t, text, "📞 <b>واتساب:</b> 0500000000")
	assert.NotContains(t, text, "هاتف")
	assert.Contains(t, text, "لا يوجد خدمات إضافية")
	assert.Contains(t, text, "• الاستقدام/إنجاز: لا يوجد")
	assert.Contains(t, text, "• صور الجوازات: لا يوجد")
}

func TestMessage_RecruitmentOptionalPhone(t *testing.T) {
	sub := submission(models.SourceInjaz, map[string]string{
		"clientName":     "Ali",
		"whatsappNumber": "0500000000",
		"phoneNumber":    "0112345678",
	})

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "☎️ <b>هاتف:</b> 0112345678")
}

func TestMessage_MissingFieldsRenderPlaceholder(t *testing.T) {
	sub := submission(models.SourceRecruitment, nil)

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "👤 <b>العميل:</b> N/A")
	assert.Contains(t, text, "📞 <b>واتساب:</b> N/A")
}

func TestMessage_ServicesList(t *testing.T) {
	sub := submission(models.SourceRecruitment, map[string]string{
		"selectedServices": `["a & b","c"]`,
	})

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "• a &amp; b\n• c")
	assert.NotContains(t, text, "لا يوجد خدمات إضافية")
}

func TestMessage_ServicesRawString(t *testing.T) {
	sub := submission(models.SourceRecruitment, map[string]string{
		"selectedServices": "not json",
	})

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "• not json")
}

func TestMessage_DocumentsAttached(t *testing.T) {
	sub := submission(models.SourceRecruitment, map[string]string{"clientName": "Ali"})
	outcomes := map[models.AttachmentCategory][]models.UploadOutcome{
		models.CategoryPassportImage: {{FileName: "passport.jpg", OK: true}},
	}

	text := compose.Message(sub, outcomes)
	assert.Contains(t, text, "• الاستقدام/إنجاز: لا يوجد")
	assert.Contains(t, text, "• صور الجوازات: مرفق")
	assert.NotContains(t, text, "❌")
}

func TestMessage_FailedUploadMarker(t *testing.T) {
	sub := submission(models.SourceRecruitment, map[string]string{"clientName": "Ali"})
	outcomes := map[models.AttachmentCategory][]models.UploadOutcome{
		models.CategoryPassportImage: {
			{FileName: "ok.jpg", OK: true},
			{FileName: "lost.jpg", OK: false},
		},
	}

	text := compose.Message(sub, outcomes)
	// The category still counts as attached, but the lost file is named.
	assert.Contains(t, text, "• صور الجوازات: مرفق")
	assert.Contains(t, text, "❌ فشل رفع: lost.jpg")
	assert.NotContains(t, text, "❌ فشل رفع: ok.jpg")
}

func TestMessage_TasaheelTemplate(t *testing.T) {
	sub := submission(models.SourceTasaheel, map[string]string{
		"fullName":        "Sara",
		"whatsapp":        "0555555555",
		"appointmentDate": "2026-09-01",
		"center":          "الرياض",
		"visaType":        "زيارة",
	})

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "👤 <b>العميل:</b> Sara")
	assert.Contains(t, text, "📅 <b>الموعد:</b> 2026-09-01")
	assert.Contains(t, text, "📍 <b>المركز:</b> الرياض")
	assert.Contains(t, text, "🏷️ <b>التأشيرة:</b> زيارة")
	// Appointment bookings carry no services or documents sections.
	assert.NotContains(t, text, "الخدمات")
	assert.NotContains(t, text, "المستندات")
}

func TestMessage_GenericFallback(t *testing.T) {
	sub := &models.LeadSubmission{
		Source: "landing-page-v2",
		Fields: map[string]string{
			"source":           "landing-page-v2",
			"clientName":       "Ali <admin>",
			"customField":      "value",
			"selectedServices": `["a","b"]`,
		},
		FieldOrder: []string{"source", "clientName", "customField", "selectedServices"},
	}

	text := compose.Message(sub, nil)

	assert.Contains(t, text, "🎉 <b>طلب جديد - landing-page-v2</b> 🎉")
	assert.Contains(t, text, "<b>العميل:</b> Ali &lt;admin&gt;")
	assert.Contains(t, text, "<b>customField:</b> value")
	assert.Contains(t, text, "<b>الخدمات المختارة:</b> a، b")
	// The discriminator itself is not dumped.
	assert.NotContains(t, text, "<b>المصدر:</b>")

	// Receipt order is preserved.
	client := strings.Index(text, "العميل")
	custom := strings.Index(text, "customField")
	services := strings.Index(text, "الخدمات المختارة")
	assert.Less(t, client, custom)
	assert.Less(t, custom, services)
}

func TestMessage_EscapesSourceOnce(t *testing.T) {
	sub := submission("<script> & co", nil)

	text := compose.Message(sub, nil)
	assert.Contains(t, text, "طلب جديد - &lt;script&gt; &amp; co")
}
