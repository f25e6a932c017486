package services

import (
	"strings"

	"github.com/Tour-Der-Wang-Dev/infiworld-crypto-hub-99/internal/models"
)

// freelancerCatalogue is the static freelancer directory.
var freelancerCatalogue = []models.Freelancer{
	{
		ID:       1,
		Name:     "Somchai P.",
		Category: "programmer",
		Rating:   4.9,
		Price:    1500,
		Image:    "/images/freelance/somchai.jpg",
		Skills:   []string{"Go", "React", "PostgreSQL"},
	},
	{
		ID:       2,
		Name:     "Nattaya K.",
		Category: "designer",
		Rating:   4.8,
		Price:    1200,
		Image:    "/images/freelance/nattaya.jpg",
		Skills:   []string{"UI/UX", "Figma", "Branding"},
	},
	{
		ID:       3,
		Name:     "Wichai T.",
		Category: "teacher",
		Rating:   4.7,
		Price:    800,
		Image:    "/images/freelance/wichai.jpg",
		Skills:   []string{"English", "IELTS prep", "Business Thai"},
	},
	{
		ID:       4,
		Name:     "Malee S.",
		Category: "programmer",
		Rating:   4.6,
		Price:    1400,
		Image:    "/images/freelance/malee.jpg",
		Skills:   []string{"Python", "Data analysis", "Machine learning"},
	},
	{
		ID:       5,
		Name:     "Anong R.",
		Category: "designer",
		Rating:   4.9,
		Price:    1600,
		Image:    "/images/freelance/anong.jpg",
		Skills:   []string{"Illustration", "Motion graphics", "After Effects"},
	},
	{
		ID:       6,
		Name:     "Prasert L.",
		Category: "teacher",
		Rating:   4.5,
		Price:    700,
		Image:    "/images/freelance/prasert.jpg",
		Skills:   []string{"Mathematics", "Physics", "Exam tutoring"},
	},
}

// FreelancerFilter narrows the freelancer directory. An empty query or
// category matches everything.
type FreelancerFilter struct {
	Query    string `form:"q"`
	Category string `form:"category"`
}

type IFreelanceService interface {
	Search(filter FreelancerFilter) []models.Freelancer
}

type freelanceService struct{}

func NewFreelanceService() IFreelanceService {
	return &freelanceService{}
}

// Search matches the query case-insensitively against name, category and
// skills, then applies the category filter.
func (s *freelanceService) Search(filter FreelancerFilter) []models.Freelancer {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.ToLower(strings.TrimSpace(filter.Category))

	matched := make([]models.Freelancer, 0, len(freelancerCatalogue))
	for _, freelancer := range freelancerCatalogue {
		if category != "" && strings.ToLower(freelancer.Category) != category {
			continue
		}
		if query != "" && !freelancerMatches(freelancer, query) {
			continue
		}
		matched = append(matched, freelancer)
	}
	return matched
}

func freelancerMatches(f models.Freelancer, query string) bool {
	if strings.Contains(strings.ToLower(f.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(f.Category), query) {
		return true
	}
	for _, skill := range f.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}
