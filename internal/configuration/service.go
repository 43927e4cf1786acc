package configuration

import (
	"context"

	"github.com/alfons-cm/community-management-backend/internal/editform"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

type Service struct {
	Repo  *Repository
	Store *Store
	Form  *editform.Form[Configuration]
}

func NewService(repo *Repository, store *Store) *Service {
	return &Service{
		Repo:  repo,
		Store: store,
		Form:  EditForm(repo, store),
	}
}

func (s *Service) List(page paging.Page, filter string) ([]Configuration, error) {
	return s.Repo.Find(page, filter)
}

func (s *Service) Get(key string) (*Configuration, error) {
	return s.Repo.Get(key)
}

// Save runs the edit-form workflow. An empty key opens a blank record in
// create mode; a known key opens the stored record with the key locked. A key
// that disappeared since the listing falls back to create mode.
func (s *Service) Save(ctx context.Context, key string, req *SaveConfigurationRequest) (Configuration, error) {
	var record *Configuration
	if key != "" {
		existing, err := s.Repo.Get(key)
		if err != nil {
			return Configuration{}, err
		}
		record = existing
	}
	if record == nil {
		record = s.Repo.NewBlank()
	}

	session := s.Form.Open(*record)
	if record.Key == "" {
		if err := session.Set("key", req.Key); err != nil {
			session.Cancel()
			return Configuration{}, err
		}
	}
	if err := session.Set("value", req.Value); err != nil {
		session.Cancel()
		return Configuration{}, err
	}
	return session.Save(ctx)
}

// Delete removes a row and reloads the snapshot; a missing key is a no-op.
func (s *Service) Delete(ctx context.Context, key string) error {
	if err := s.Repo.Delete(key); err != nil {
		return err
	}
	return s.Store.Reload(ctx)
}
