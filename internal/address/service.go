package address

import (
	"context"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Service manages the caller's shipping addresses. At most one address is
// the default, and the first address a user adds becomes it.
type Service interface {
	List(ctx context.Context) ([]Address, error)

	Create(ctx context.Context, input Input) (*Address, error)
	Update(ctx context.Context, addressID primitive.ObjectID, input Input) (*Address, error)
	Delete(ctx context.Context, addressID primitive.ObjectID) error

	SetDefaultAddress(ctx context.Context, addressID primitive.ObjectID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(
	ctx context.Context,
) ([]Address, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "List"),
	)

	log.Debug("listing addresses")

	return s.repo.List(ctx, userID)
}

func (s *service) Create(
	ctx context.Context,
	input Input,
) (*Address, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Create"),
	)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	input = normalize(input)
	if err := validate(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr := fromInput(primitive.NewObjectID(), input)
	if len(existing) == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Add(ctx, userID, addr); err != nil {
		log.Error("failed to create address", zap.Error(err))
		return nil, err
	}

	log.Info("address created", zap.String("address_id", addr.ID.Hex()))
	return &addr, nil
}

func (s *service) Update(
	ctx context.Context,
	addressID primitive.ObjectID,
	input Input,
) (*Address, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", addressID.Hex()),
	)

	input = normalize(input)
	if err := validate(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := find(existing, addressID)
	if current == nil {
		log.Warn("address not owned by user")
		return nil, ErrAddressNotFound
	}

	addr := fromInput(addressID, input)
	// The default moves only when another address is promoted.
	addr.IsDefault = input.IsDefault || current.IsDefault

	if input.IsDefault && !current.IsDefault {
		if err := s.repo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Replace(ctx, userID, addr); err != nil {
		log.Error("failed to update address", zap.Error(err))
		return nil, err
	}

	log.Info("address updated")
	return &addr, nil
}

func (s *service) Delete(
	ctx context.Context,
	addressID primitive.ObjectID,
) error {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("service", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", addressID.Hex()),
	)

	existing, err := s.repo.List(ctx, userID)
	if err != nil {
		return err
	}

	current := find(existing, addressID)
	if current == nil {
		return ErrAddressNotFound
	}

	if err := s.repo.Remove(ctx, userID, addressID); err != nil {
		log.Error("failed to delete address", zap.Error(err))
		return err
	}

	if current.IsDefault {
		for _, a := range existing {
			if a.ID != addressID {
				if err := s.repo.SetDefault(ctx, userID, a.ID); err != nil {
					log.Error("failed to promote default address", zap.Error(err))
					return err
				}
				break
			}
		}
	}

	log.Info("address deleted")
	return nil
}

func (s *service) SetDefaultAddress(
	ctx context.Context,
	addressID primitive.ObjectID,
) error {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	existing, err := s.repo.List(ctx, userID)
	if err != nil {
		return err
	}
	if find(existing, addressID) == nil {
		return ErrAddressNotFound
	}

	if err := s.repo.ClearDefault(ctx, userID); err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, userID, addressID)
}

func normalize(in Input) Input {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Province = strings.TrimSpace(in.Province)
	in.City = strings.TrimSpace(in.City)
	in.District = strings.TrimSpace(in.District)
	in.Address = strings.TrimSpace(in.Address)
	return in
}

func validate(in Input) error {
	if in.Name == "" || in.Phone == "" || in.Address == "" {
		return ErrMissingFields
	}
	return nil
}

func fromInput(id primitive.ObjectID, in Input) Address {
	return Address{
		ID:        id,
		Name:      in.Name,
		Phone:     in.Phone,
		Province:  in.Province,
		City:      in.City,
		District:  in.District,
		Address:   in.Address,
		IsDefault: in.IsDefault,
	}
}

func find(list []Address, id primitive.ObjectID) *Address {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}
