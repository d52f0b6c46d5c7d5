package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/ciadabeleza/salon-scheduler/internal/domain/appointment"
	"github.com/ciadabeleza/salon-scheduler/internal/feed"
	"github.com/ciadabeleza/salon-scheduler/internal/models"
)

// Publisher recebe as mudanças que o repositório aplica, na ordem em que
// foram aplicadas. É como as assinaturas ao vivo enxergam as escritas.
type Publisher interface {
	Publish(c feed.Change)
}

type AppointmentGormRepository struct {
	db        *gorm.DB
	publisher Publisher
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// SetPublisher liga o repositório ao hub. O hub precisa do repositório para
// carregar snapshots, então a ligação é feita depois da construção, na
// montagem das rotas.
func (r *AppointmentGormRepository) SetPublisher(p Publisher) {
	r.publisher = p
}

func (r *AppointmentGormRepository) publish(t feed.ChangeType, ap *models.Appointment) {
	if r.publisher == nil {
		return
	}
	r.publisher.Publish(feed.Change{Type: t, Record: *ap})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListByProfessionalName(
	ctx context.Context,
	name string,
) ([]models.Appointment, error) {

	// Só igualdade pelo nome desnormalizado; filtro de data e ordenação são
	// feitos em memória sobre o instante normalizado.
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("professional_name = ?", name).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListByProfessionalID(
	ctx context.Context,
	professionalID string,
	statuses []string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Where("professional_id = ?", professionalID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var aps []models.Appointment
	if err := q.Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *AppointmentGormRepository) ListFromInstant(
	ctx context.Context,
	from time.Time,
	limit int,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("scheduled_at >= ?", from).
		Order("scheduled_at ASC").
		Limit(limit).
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	if err := r.db.WithContext(ctx).Create(ap).Error; err != nil {
		return err
	}
	r.publish(feed.ChangeAdded, ap)
	return nil
}

func (r *AppointmentGormRepository) SetStatus(
	ctx context.Context,
	id string,
	status domain.Status,
	now time.Time,
) error {

	// Escrita de campo único por ID, sem comparar o estado corrente: duas
	// transições simultâneas terminam em last-write-wins.
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": now,
		}).Error; err != nil {
		return err
	}

	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	r.publish(feed.ChangeModified, ap)
	return nil
}

func (r *AppointmentGormRepository) MarkNotified(
	ctx context.Context,
	id string,
) error {

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("notified", true).Error; err != nil {
		return err
	}

	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	r.publish(feed.ChangeModified, ap)
	return nil
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	ap, err := r.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Delete(&models.Appointment{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.publish(feed.ChangeRemoved, ap)
	return nil
}

// --------------------------------------------------
// Reference data
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProfessional(
	ctx context.Context,
	id string,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).
		First(&user, "id = ? AND role = ?", id, "profissional").Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error
	if err == nil {
		return &client, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	client = models.Client{
		Name:  name,
		Phone: phone,
		Email: email,
	}
	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CountClientsSince(
	ctx context.Context,
	from time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("created_at >= ?", from).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
