package dashboard

import (
	"context"

	"cat-rescue/internal/domain/adoptions"
	"cat-rescue/internal/domain/cats"
	"cat-rescue/internal/domain/users"
)

type CatLister interface {
	List(ctx context.Context) ([]cats.Cat, error)
}

type UserLister interface {
	List(ctx context.Context) ([]users.User, error)
}

type AdoptionLister interface {
	ListAll(ctx context.Context) ([]adoptions.Adoption, error)
}

type Stats struct {
	TotalCats     int
	AvailableCats int
	AdoptedCats   int

	TotalUsers int
	AdminUsers int

	TotalAdoptions     int
	PendingAdoptions   int
	CompletedAdoptions int
}

type Service struct {
	cats      CatLister
	users     UserLister
	adoptions AdoptionLister
}

func NewService(catLister CatLister, userLister UserLister, adoptionLister AdoptionLister) *Service {
	return &Service{
		cats:      catLister,
		users:     userLister,
		adoptions: adoptionLister,
	}
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	cs, err := s.cats.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st.TotalCats = len(cs)
	for _, c := range cs {
		switch c.Status {
		case cats.StatusAvailable:
			st.AvailableCats++
		case cats.StatusAdopted:
			st.AdoptedCats++
		}
	}

	us, err := s.users.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st.TotalUsers = len(us)
	for _, u := range us {
		if u.IsAdmin() {
			st.AdminUsers++
		}
	}

	as, err := s.adoptions.ListAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	st.TotalAdoptions = len(as)
	for _, a := range as {
		switch a.Status {
		case adoptions.StatusPending:
			st.PendingAdoptions++
		case adoptions.StatusCompleted:
			st.CompletedAdoptions++
		}
	}

	return st, nil
}
