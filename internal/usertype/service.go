package usertype

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() ([]UserType, error) {
	return s.repo.List()
}

func (s *Service) Create(nombre string) (UserType, error) {
	return s.repo.Create(nombre)
}
