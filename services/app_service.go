package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/specdeploy/dto"
	"github.com/specdeploy/lib/kubernetes"
	"github.com/specdeploy/models"
	"github.com/specdeploy/repositories"
	"github.com/specdeploy/utils"
)

// AppService handles business logic for apps and their descriptors
type AppService struct {
	appRepo       *repositories.AppRepository
	encryptionKey string
	k8sProxyURL   string
}

// NewAppService creates a new app service instance
func NewAppService(encryptionKey, k8sProxyURL string) *AppService {
	return &AppService{
		appRepo:       repositories.NewAppRepository(),
		encryptionKey: encryptionKey,
		k8sProxyURL:   k8sProxyURL,
	}
}

// ParseAndValidateSpec decodes a raw descriptor and runs the structural
// checks. Parse failures are reported as a single violation on the document.
func (s *AppService) ParseAndValidateSpec(raw string) (models.AppSpec, []dto.SpecViolation) {
	spec, err := models.ParseAppSpec([]byte(raw))
	if err != nil {
		return models.AppSpec{}, []dto.SpecViolation{
			{Field: "spec", Message: err.Error()},
		}
	}

	return spec, utils.ValidateAppSpec(spec)
}

// CreateApp registers an app from a raw descriptor. Secret env values are
// sealed before the descriptor is stored.
func (s *AppService) CreateApp(rawSpec string, userID string) (models.App, []dto.SpecViolation, error) {
	spec, violations := s.ParseAndValidateSpec(rawSpec)
	if len(violations) > 0 {
		return models.App{}, violations, nil
	}

	exists, err := s.appRepo.ExistsByName(spec.Name)
	if err != nil {
		return models.App{}, nil, err
	}
	if exists {
		return models.App{}, nil, fmt.Errorf("%w: %s", ErrAppNameTaken, spec.Name)
	}

	if err := utils.SealSecretValues(&spec, s.encryptionKey); err != nil {
		return models.App{}, nil, err
	}

	app := models.App{
		Name:         spec.Name,
		UserID:       userID,
		Spec:         spec,
		SpecRevision: 1,
	}

	created, err := s.appRepo.Create(app)
	return created, nil, err
}

// ListApps retrieves the apps visible to a user
func (s *AppService) ListApps(userID string, isAdmin bool) ([]models.App, error) {
	if isAdmin {
		return s.appRepo.FindAll()
	}
	return s.appRepo.FindByUserID(userID)
}

// GetAppDetail retrieves one app, enforcing ownership
func (s *AppService) GetAppDetail(appID string, userID string, isAdmin bool) (models.App, error) {
	app, err := s.appRepo.FindByID(appID)
	if err != nil {
		return app, err
	}

	if !isAdmin && app.UserID != userID {
		return models.App{}, ErrUnauthorizedApp
	}

	return app, nil
}

// UpdateApp replaces the stored descriptor with a new revision. Secrets
// omitted from the incoming descriptor keep their stored ciphertext; new
// plain secret values are sealed.
func (s *AppService) UpdateApp(appID string, rawSpec string, userID string, isAdmin bool) (models.App, []dto.SpecViolation, error) {
	app, err := s.GetAppDetail(appID, userID, isAdmin)
	if err != nil {
		return app, nil, err
	}

	spec, violations := s.ParseAndValidateSpec(rawSpec)
	if len(violations) > 0 {
		return models.App{}, violations, nil
	}

	if spec.Name != app.Name {
		return models.App{}, nil, errors.New("descriptor name cannot change on update")
	}

	utils.CarryForwardSecrets(&spec, app.Spec)
	if err := utils.SealSecretValues(&spec, s.encryptionKey); err != nil {
		return models.App{}, nil, err
	}

	app.Spec = spec
	app.SpecRevision++

	if err := s.appRepo.Update(app); err != nil {
		return app, nil, err
	}

	return app, nil, nil
}

// DeleteApp removes an app and tears down its namespace
func (s *AppService) DeleteApp(appID string, userID string, isAdmin bool) error {
	app, err := s.GetAppDetail(appID, userID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.appRepo.Delete(app.ID); err != nil {
		return err
	}

	// Namespace deletion cascades to every rendered resource
	kubeClient, err := kubernetes.NewClient(s.k8sProxyURL)
	if err != nil {
		log.Printf("Warning: app %s deleted but cluster cleanup skipped: %v", app.ID, err)
		return nil
	}

	ctx := context.Background()
	namespace := utils.AppNamespace(app)

	exists, err := kubeClient.NamespaceExists(ctx, namespace)
	if err != nil {
		log.Printf("Warning: failed to check namespace for app %s: %v", app.ID, err)
		return nil
	}
	if !exists {
		// Never deployed, nothing to tear down
		return nil
	}

	if err := kubeClient.DeleteNamespace(ctx, namespace); err != nil {
		log.Printf("Warning: failed to delete namespace for app %s: %v", app.ID, err)
	}

	return nil
}

// RedactedResponse maps an app to its API view with secrets blanked
func (s *AppService) RedactedResponse(app models.App) dto.AppResponse {
	return dto.AppResponse{
		ID:           app.ID,
		Name:         app.Name,
		UserID:       app.UserID,
		Spec:         utils.RedactSecrets(app.Spec),
		SpecRevision: app.SpecRevision,
		CreatedAt:    app.CreatedAt,
		UpdatedAt:    app.UpdatedAt,
	}
}
