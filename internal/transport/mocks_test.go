package transport

import (
	"context"

	"storefront/internal/address"
	"storefront/internal/captcha"
	"storefront/internal/cart"
	"storefront/internal/order"
	"storefront/internal/payment"
	"storefront/internal/product"
	"storefront/internal/user"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockCaptcha struct{ mock.Mock }

func (m *MockCaptcha) Issue(ctx context.Context) (*captcha.Challenge, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*captcha.Challenge), args.Error(1)
}

func (m *MockCaptcha) Verify(ctx context.Context, key, candidate string) (bool, error) {
	args := m.Called(ctx, key, candidate)
	return args.Bool(0), args.Error(1)
}

type MockUsers struct{ mock.Mock }

func (m *MockUsers) Register(ctx context.Context, input user.RegisterInput) (*user.Profile, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUsers) Login(ctx context.Context, input user.LoginInput) (*user.LoginResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.LoginResult), args.Error(1)
}

func (m *MockUsers) VerifyEmail(ctx context.Context, token string) (*user.Profile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUsers) Authenticate(ctx context.Context, token string) (*user.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUsers) GetProfile(ctx context.Context) (*user.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockUsers) UpdateProfile(ctx context.Context, params user.UpdateProfileParams) (*user.Profile, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

type MockAddresses struct{ mock.Mock }

func (m *MockAddresses) List(ctx context.Context) ([]address.Address, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]address.Address), args.Error(1)
}

func (m *MockAddresses) Create(ctx context.Context, input address.Input) (*address.Address, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddresses) Update(ctx context.Context, id primitive.ObjectID, input address.Input) (*address.Address, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

func (m *MockAddresses) Delete(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAddresses) SetDefaultAddress(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

type MockProducts struct{ mock.Mock }

func (m *MockProducts) List(ctx context.Context, page, limit int) (*product.ListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProducts) Search(ctx context.Context, keyword string) (*product.ListResult, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.ListResult), args.Error(1)
}

func (m *MockProducts) Get(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProducts) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[primitive.ObjectID]*product.Product), args.Error(1)
}

type MockCarts struct{ mock.Mock }

func (m *MockCarts) view(args mock.Arguments) (*cart.View, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.View), args.Error(1)
}

func (m *MockCarts) GetCart(ctx context.Context) (*cart.View, error) {
	return m.view(m.Called(ctx))
}

func (m *MockCarts) AddItem(ctx context.Context, productID primitive.ObjectID, quantity int) (*cart.View, error) {
	return m.view(m.Called(ctx, productID, quantity))
}

func (m *MockCarts) SetQuantity(ctx context.Context, productID primitive.ObjectID, quantity int) (*cart.View, error) {
	return m.view(m.Called(ctx, productID, quantity))
}

func (m *MockCarts) RemoveItem(ctx context.Context, productID primitive.ObjectID) (*cart.View, error) {
	return m.view(m.Called(ctx, productID))
}

func (m *MockCarts) SetSelection(ctx context.Context, productIDs []primitive.ObjectID, selected bool) (*cart.View, error) {
	return m.view(m.Called(ctx, productIDs, selected))
}

type MockOrders struct{ mock.Mock }

func (m *MockOrders) order(args mock.Arguments) (*order.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrders) CreateOrder(ctx context.Context, input order.CreateInput) (*order.Order, error) {
	return m.order(m.Called(ctx, input))
}

func (m *MockOrders) ListOrders(ctx context.Context, page, limit int) (*order.ListResult, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ListResult), args.Error(1)
}

func (m *MockOrders) GetOrder(ctx context.Context, id primitive.ObjectID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrders) CancelOrder(ctx context.Context, id primitive.ObjectID) (*order.Order, error) {
	return m.order(m.Called(ctx, id))
}

func (m *MockOrders) PayOrder(ctx context.Context, id primitive.ObjectID, method payment.Method) (*order.Order, error) {
	return m.order(m.Called(ctx, id, method))
}
