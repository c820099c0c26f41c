package member

import "context"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Join registers a new member.
func (s *Service) Join(ctx context.Context, m Member) error {
	return s.repo.Save(ctx, m)
}

func (s *Service) FindMember(ctx context.Context, id int64) (Member, error) {
	return s.repo.FindByID(ctx, id)
}

// Repository returns the repository the service was built with.
func (s *Service) Repository() Repository { return s.repo }
