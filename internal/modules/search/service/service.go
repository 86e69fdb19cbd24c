package service

import (
	"html"
	"log"

	"github.com/google/uuid"
	"github.com/kickstarthq/talent-backend/internal/entity"
	"github.com/meilisearch/meilisearch-go"
	"github.com/microcosm-cc/bluemonday"
)

const (
	indexRoles    = "roles"
	indexStartups = "startups"
	indexStudents = "students"
)

// SearchService maintains the discovery indexes. Only verified startups
// and their active roles are ever indexed, so search results enforce the
// verification gate by construction; public students are indexed when
// onboarded.
type SearchService interface {
	IndexRole(role *entity.RolePosting, startup *entity.Startup) error
	DeleteRole(id uuid.UUID) error
	IndexStartup(startup *entity.Startup) error
	DeleteStartup(id uuid.UUID) error
	IndexStudent(student *entity.Student, account *entity.Account) error
	DeleteStudent(id uuid.UUID) error
}

type searchService struct {
	client    meilisearch.ServiceManager
	sanitizer *bluemonday.Policy
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{
		client:    client,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.initIndexes()
	return s
}

func (s *searchService) initIndexes() {
	configure := func(index string, filterable []string) {
		attrs := make([]any, len(filterable))
		for i, v := range filterable {
			attrs[i] = v
		}
		if _, err := s.client.Index(index).UpdateFilterableAttributes(&attrs); err != nil {
			log.Printf("Failed to update %s filterable attributes: %v", index, err)
		}
	}

	configure(indexRoles, []string{"startup_id", "role_type", "job_function", "location_type", "paid"})
	configure(indexStartups, []string{"stage", "industry", "location"})
	configure(indexStudents, []string{"university", "graduation_year", "is_available"})
}

// clean strips markup from user-authored text before it enters an index.
func (s *searchService) clean(text *string) string {
	if text == nil {
		return ""
	}
	return html.UnescapeString(s.sanitizer.Sanitize(*text))
}

func (s *searchService) IndexRole(role *entity.RolePosting, startup *entity.Startup) error {
	if startup == nil || !startup.IsVerified || !role.IsActive {
		// Off-gate roles must not linger in the index.
		return s.DeleteRole(role.ID)
	}

	doc := map[string]any{
		"id":           role.ID.String(),
		"startup_id":   role.StartupID.String(),
		"title":        role.Title,
		"description":  s.clean(role.Description),
		"requirements": s.clean(role.Requirements),
		"role_type":    derefOr(role.RoleType, ""),
		"job_function": derefOr(role.JobFunction, ""),
		"location_type": derefOr(role.LocationType, ""),
		"location":     derefOr(role.Location, ""),
		"paid":         role.Paid,
		"company_name": startup.CompanyName,
		"created_at":   role.CreatedAt.Unix(),
	}

	_, err := s.client.Index(indexRoles).AddDocuments([]map[string]any{doc}, nil)
	return err
}

func (s *searchService) DeleteRole(id uuid.UUID) error {
	_, err := s.client.Index(indexRoles).DeleteDocument(id.String())
	return err
}

func (s *searchService) IndexStartup(startup *entity.Startup) error {
	if !startup.IsVerified {
		return s.DeleteStartup(startup.AccountID)
	}

	doc := map[string]any{
		"id":           startup.AccountID.String(),
		"company_name": startup.CompanyName,
		"tagline":      s.clean(startup.Tagline),
		"description":  s.clean(startup.Description),
		"stage":        derefOr(startup.Stage, ""),
		"industry":     derefOr(startup.Industry, ""),
		"location":     derefOr(startup.Location, ""),
	}

	_, err := s.client.Index(indexStartups).AddDocuments([]map[string]any{doc}, nil)
	return err
}

func (s *searchService) DeleteStartup(id uuid.UUID) error {
	if _, err := s.client.Index(indexStartups).DeleteDocument(id.String()); err != nil {
		return err
	}
	return nil
}

func (s *searchService) IndexStudent(student *entity.Student, account *entity.Account) error {
	if !student.IsPublic || (account != nil && !account.OnboardingCompleted) {
		return s.DeleteStudent(student.AccountID)
	}

	doc := map[string]any{
		"id":           student.AccountID.String(),
		"headline":     s.clean(student.Headline),
		"bio":          s.clean(student.Bio),
		"university":   student.University,
		"major":        derefOr(student.Major, ""),
		"is_available": student.IsAvailable,
	}
	if account != nil {
		doc["full_name"] = account.FullName
	}
	if student.GraduationYear != nil {
		doc["graduation_year"] = *student.GraduationYear
	}

	_, err := s.client.Index(indexStudents).AddDocuments([]map[string]any{doc}, nil)
	return err
}

func (s *searchService) DeleteStudent(id uuid.UUID) error {
	_, err := s.client.Index(indexStudents).DeleteDocument(id.String())
	return err
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}
