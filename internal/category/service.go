package category

type Service interface {
	List() []Info
}

type service struct{}

func NewService() Service {
	return &service{}
}

func (s *service) List() []Info {
	out := make([]Info, 0, len(all))
	for _, c := range all {
		out = append(out, Info{ID: c, Name: c.Name()})
	}
	return out
}
