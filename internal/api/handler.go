package api

import (
	"errors"
	"html/template"
	"time"

	"github.com/terraincognita07/healthsome/internal/db"
	"github.com/terraincognita07/healthsome/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSessionTTL = 7 * 24 * time.Hour

type Handler struct {
	store        *db.Store
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	sessionTTL   time.Duration
	passwordCost int
	now          func() time.Time
	templates    map[string]*template.Template
	cookieCodec  *secureCookieCodec

	bloodPressure *metricResource[models.BloodPressureRecord]
	weight        *metricResource[models.WeightRecord]
	medications   *metricResource[models.MedicationRecord]
}

type Options struct {
	Location     *time.Location
	CookieSecure bool
	SessionTTL   time.Duration
	// PasswordCost is the bcrypt cost for new hashes; zero means bcrypt.DefaultCost.
	PasswordCost int
	Now          func() time.Time
}

func NewHandler(database *gorm.DB, secret string, options Options) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}

	location := options.Location
	if location == nil {
		location = time.Local
	}
	sessionTTL := options.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	passwordCost := options.PasswordCost
	if passwordCost == 0 {
		passwordCost = bcrypt.DefaultCost
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}

	templates, err := parsePageTemplates(newTemplateFuncMap(), pageTemplates)
	if err != nil {
		return nil, err
	}

	codec, err := newSecureCookieCodec([]byte(secret))
	if err != nil {
		return nil, err
	}

	handler := &Handler{
		store:        db.NewStore(database),
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: options.CookieSecure,
		sessionTTL:   sessionTTL,
		passwordCost: passwordCost,
		now:          now,
		templates:    templates,
		cookieCodec:  codec,
	}
	handler.bloodPressure = newBloodPressureResource(handler)
	handler.weight = newWeightResource(handler)
	handler.medications = newMedicationsResource(handler)
	return handler, nil
}

// localNow is the current wall-clock time in the configured zone.
// Stored timestamps carry no zone, so range bounds are computed from it.
func (handler *Handler) localNow() time.Time {
	return handler.now().In(handler.location)
}
