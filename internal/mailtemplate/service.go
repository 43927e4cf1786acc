package mailtemplate

import (
	"context"
	"fmt"
	"strings"

	"github.com/alfons-cm/community-management-backend/internal/configuration"
	"github.com/alfons-cm/community-management-backend/internal/editform"
	"github.com/alfons-cm/community-management-backend/internal/paging"
)

// Sender delivers one mail. The SMTP implementation lives in utils; tests
// substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	Repo     *Repository
	Form     *editform.Form[MailTemplate]
	Sender   Sender
	Settings *configuration.Store
}

func NewService(repo *Repository, sender Sender, settings *configuration.Store) *Service {
	return &Service{
		Repo:     repo,
		Form:     EditForm(repo),
		Sender:   sender,
		Settings: settings,
	}
}

func (s *Service) List(page paging.Page, filter string) ([]MailTemplate, error) {
	return s.Repo.Find(page, filter)
}

func (s *Service) Get(id ID) (*MailTemplate, error) {
	return s.Repo.Get(id)
}

func (s *Service) MissingIDs() ([]ID, error) {
	return s.Repo.MissingIDs()
}

// Save runs the edit-form workflow. An empty id opens a blank template in
// create mode; a known id opens the stored template with the id locked.
func (s *Service) Save(ctx context.Context, id ID, req *SaveMailTemplateRequest) (MailTemplate, error) {
	var record *MailTemplate
	if id != "" {
		existing, err := s.Repo.Get(id)
		if err != nil {
			return MailTemplate{}, err
		}
		record = existing
	}
	if record == nil {
		record = s.Repo.NewBlank()
	}

	session := s.Form.Open(*record)
	if record.ID == "" {
		if err := session.Set("id", req.ID); err != nil {
			session.Cancel()
			return MailTemplate{}, err
		}
	}
	if err := session.Set("subject", req.Subject); err != nil {
		session.Cancel()
		return MailTemplate{}, err
	}
	if err := session.Set("body", req.Body); err != nil {
		session.Cancel()
		return MailTemplate{}, err
	}
	return session.Save(ctx)
}

// Delete removes a template; a missing id is a no-op. The mail ID itself
// stays known, so the template reappears in the missing list.
func (s *Service) Delete(id ID) error {
	return s.Repo.Delete(id)
}

// Notify loads the template for id, expands ${name} placeholders in subject
// and body from params, and sends the result to the given address. The
// sender address comes from the current configuration snapshot.
func (s *Service) Notify(ctx context.Context, id ID, params map[string]string, to string) error {
	template, err := s.Repo.Get(id)
	if err != nil {
		return err
	}
	if template == nil {
		return fmt.Errorf("mailtemplate: no template for %s", id)
	}
	from := s.Settings.Current().EmailSenderAddress()
	return s.Sender.Send(ctx, from, to, expand(template.Subject, params), expand(template.Body, params))
}

// expand replaces every ${name} occurrence with its parameter value.
// Unknown placeholders are left untouched so a misconfigured template is
// visible in the mail rather than silently blanked.
func expand(text string, params map[string]string) string {
	for name, value := range params {
		text = strings.ReplaceAll(text, "${"+name+"}", value)
	}
	return text
}
