// Package seed wipes and repopulates the database with a fixed
// illustrative dataset for demos and manual testing. It is not a data
// entry path: ids are stable so the frontend mock data lines up.
package seed

import (
	"gorm.io/gorm"

	"github.com/qzlaw/office-backend/pkg/models"
)

// Deletion order respects ownership: dependents before their owners.
func tablesInDeleteOrder() []any {
	return []any{
		&models.Notification{}, &models.TimelineEntry{}, &models.CaseFile{},
		&models.Consultation{}, &models.Appointment{}, &models.Case{},
		&models.Client{}, &models.Service{},
	}
}

// Clear removes every row from every table in one transaction.
func Clear(db *gorm.DB) error {
	return db.Transaction(clearTx)
}

func clearTx(tx *gorm.DB) error {
	for _, m := range tablesInDeleteOrder() {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// Apply clears everything and inserts the demo dataset atomically.
func Apply(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := clearTx(tx); err != nil {
			return err
		}

		clients := []models.Client{
			{ID: "cl-1", Name: "عبد الله أيت باها", Phone: "+212 661 234 567", Email: "abdellah.aitbaha@gmail.com", Address: "حي النخيل، زاكورة", CIN: "JA123456", CasesCount: 2, AppointmentsCount: 5},
			{ID: "cl-2", Name: "خديجة الصحراوي", Phone: "+212 662 345 678", Email: "khadija.sahraoui@gmail.com", Address: "أمزرو، زاكورة", CIN: "JA234567", CasesCount: 1, AppointmentsCount: 3},
			{ID: "cl-3", Name: "محمد أوعلي", Phone: "+212 663 456 789", Email: "mohamed.ouali@gmail.com", Address: "تازارين، زاكورة", CIN: "JA345678", CasesCount: 3, AppointmentsCount: 8},
			{ID: "cl-4", Name: "فاطمة تامازيرت", Phone: "+212 664 567 890", Email: "fatima.tamazirt@gmail.com", Address: "أكدز، زاكورة", CIN: "JA456789", CasesCount: 1, AppointmentsCount: 2},
			{ID: "cl-5", Name: "إبراهيم الدرعي", Phone: "+212 665 678 901", Email: "ibrahim.draoui@gmail.com", Address: "محاميد الغزلان، زاكورة", CIN: "JA567890", CasesCount: 2, AppointmentsCount: 4},
			{ID: "cl-6", Name: "زينب أيت عيسى", Phone: "+212 666 789 012", Email: "zineb.aitissa@gmail.com", Address: "تنغير", CIN: "JB678901", CasesCount: 1, AppointmentsCount: 2},
		}
		if err := tx.Create(&clients).Error; err != nil {
			return err
		}

		services := []models.Service{
			{ID: "srv-1", Name: "القضايا الجنائية", Description: "الدفاع أمام محاكم الاستئناف والمحاكم الابتدائية في جميع القضايا الجنائية", Icon: "scale"},
			{ID: "srv-2", Name: "قضايا الأسرة", Description: "الطلاق، النفقة، الحضانة، تقسيم الممتلكات وفق مدونة الأسرة المغربية", Icon: "users"},
			{ID: "srv-3", Name: "القضايا التجارية", Description: "النزاعات التجارية، تأسيس الشركات، العقود التجارية، التحصيل", Icon: "briefcase"},
			{ID: "srv-4", Name: "القضايا العقارية", Description: "نزاعات الملكية، التحفيظ العقاري، عقود البيع والشراء، الإيجارات", Icon: "building"},
			{ID: "srv-5", Name: "قضايا الشغل", Description: "حقوق العمال، الفصل التعسفي، حوادث الشغل، التعويضات", Icon: "hammer"},
			{ID: "srv-6", Name: "الاستشارات القانونية", Description: "استشارات قانونية في جميع المجالات مع السرية التامة", Icon: "message-circle"},
		}
		if err := tx.Create(&services).Error; err != nil {
			return err
		}

		appointments := []models.Appointment{
			{ID: "apt-1", ClientID: "cl-1", ClientName: "عبد الله أيت باها", Service: "استشارة قانونية", Date: "2024-12-15", Time: "10:00", Status: models.AppointmentConfirmed, Notes: "موعد لمناقشة قضية تجارية"},
			{ID: "apt-2", ClientID: "cl-2", ClientName: "خديجة الصحراوي", Service: "قضية أسرة", Date: "2024-12-16", Time: "14:00", Status: models.AppointmentPending, Notes: "ملف طلاق بالاتفاق"},
			{ID: "apt-3", ClientID: "cl-3", ClientName: "محمد أوعلي", Service: "عقد تجاري", Date: "2024-12-14", Time: "11:30", Status: models.AppointmentCompleted},
			{ID: "apt-4", ClientID: "cl-4", ClientName: "فاطمة تامازيرت", Service: "قضية عقارية", Date: "2024-12-17", Time: "09:30", Status: models.AppointmentPending},
			{ID: "apt-5", ClientID: "cl-5", ClientName: "إبراهيم الدرعي", Service: "قضية شغل", Date: "2024-12-18", Time: "15:00", Status: models.AppointmentConfirmed, Notes: "فصل تعسفي - تعويضات"},
		}
		if err := tx.Create(&appointments).Error; err != nil {
			return err
		}

		nextSession := func(s string) *string { return &s }
		cases := []models.Case{
			{ID: "case-1", CaseNumber: "ج/2024/1234", ClientID: "cl-1", Type: "قضية تجارية", Status: models.CaseStatusInCourt, Description: "نزاع تجاري حول عدم تنفيذ عقد توريد", Tribunal: "المحكمة الابتدائية بزاكورة", NextSession: nextSession("2024-12-20")},
			{ID: "case-2", CaseNumber: "أ/2024/5678", ClientID: "cl-2", Type: "قضية أسرة", Status: models.CaseStatusInReview, Description: "طلاق بالاتفاق مع تقسيم الممتلكات", Tribunal: "قسم قضاء الأسرة بزاكورة", NextSession: nextSession("2024-12-25")},
			{ID: "case-3", CaseNumber: "ش/2024/9012", ClientID: "cl-5", Type: "قضية شغل", Status: models.CaseStatusNew, Description: "المطالبة بالتعويض عن الفصل التعسفي", Tribunal: "المحكمة الابتدائية بزاكورة"},
			{ID: "case-4", CaseNumber: "ع/2024/3456", ClientID: "cl-4", Type: "قضية عقارية", Status: models.CaseStatusInCourt, Description: "نزاع حول ملكية عقار موروث", Tribunal: "محكمة الاستئناف بورزازات", NextSession: nextSession("2024-12-22")},
		}
		if err := tx.Create(&cases).Error; err != nil {
			return err
		}

		timeline := []models.TimelineEntry{
			{ID: "tl-1", CaseID: "case-1", Date: "2024-06-15", Title: "فتح الملف"},
			{ID: "tl-2", CaseID: "case-1", Date: "2024-07-01", Title: "تقديم المقال الافتتاحي"},
			{ID: "tl-3", CaseID: "case-1", Date: "2024-08-15", Title: "الجلسة الأولى"},
			{ID: "tl-4", CaseID: "case-2", Date: "2024-09-01", Title: "فتح الملف"},
			{ID: "tl-5", CaseID: "case-2", Date: "2024-09-15", Title: "تقديم طلب الطلاق بالاتفاق"},
			{ID: "tl-6", CaseID: "case-3", Date: "2024-11-20", Title: "فتح الملف"},
			{ID: "tl-7", CaseID: "case-4", Date: "2024-07-10", Title: "فتح الملف"},
			{ID: "tl-8", CaseID: "case-4", Date: "2024-08-01", Title: "تقديم المقال"},
		}
		if err := tx.Create(&timeline).Error; err != nil {
			return err
		}

		consultations := []models.Consultation{
			{ID: "cons-1", ClientName: "عبد الله أيت باها", Phone: "+212 661 234 567", Email: "abdellah.aitbaha@gmail.com", Type: "استشارة تجارية", Description: "أريد معرفة حقوقي في حالة عدم تنفيذ الطرف الآخر لالتزاماته التعاقدية", Status: models.ConsultationCompleted},
			{ID: "cons-2", ClientName: "زينب أيت عيسى", Phone: "+212 666 789 012", Email: "zineb.aitissa@gmail.com", Type: "استشارة عقارية", Description: "أريد شراء شقة وأحتاج معرفة الإجراءات القانونية اللازمة", Status: models.ConsultationPending},
		}
		if err := tx.Create(&consultations).Error; err != nil {
			return err
		}

		notifications := []models.Notification{
			{ID: "notif-1", Title: "تأكيد الموعد", Message: "تم تأكيد موعدك مع السيد عبد الله أيت باها يوم 15 دجنبر", Type: models.NotificationAppointment},
			{ID: "notif-2", Title: "جلسة غداً", Message: "تذكير: جلسة القضية ج/2024/1234 غداً بالمحكمة الابتدائية بزاكورة", Type: models.NotificationCase},
			{ID: "notif-3", Title: "رسالة جديدة", Message: "لديك رسالة جديدة من الموكلة خديجة الصحراوي", Type: models.NotificationMessage, IsRead: true},
			{ID: "notif-4", Title: "موعد جديد", Message: "طلب موعد جديد من السيد محمد أوعلي", Type: models.NotificationAppointment},
			{ID: "notif-5", Title: "تحديث القضية", Message: "تم تحديث حالة القضية ع/2024/3456", Type: models.NotificationCase},
		}
		return tx.Create(&notifications).Error
	})
}
