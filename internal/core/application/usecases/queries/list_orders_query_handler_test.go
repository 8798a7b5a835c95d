package queries_test

import (
	"errors"
	"testing"

	"ricetrade/internal/core/application/usecases/queries"
	"ricetrade/internal/core/domain/model/directory"
	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/core/domain/model/order"
	"ricetrade/internal/core/domain/services"
	"ricetrade/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestListOrdersQueryHandler_Handle_Seller(t *testing.T) {
	ctx := t.Context()

	// Given a seller with two orders
	sellerID := kernel.NewUUID()
	seller := newActor(t, identity.RoleSeller, sellerID)
	newer, older := newOrder(t, sellerID), newOrder(t, sellerID)

	reader := new(MockOrderReader)
	dir := new(MockDirectory)
	reader.On("ListBySeller", ctx, sellerID).Return([]*order.Order{newer, older}, nil).Once()
	dir.On("Parties", ctx, mock.Anything).Return(map[kernel.UUID]directory.Party{
		sellerID: {ID: sellerID, Name: "Annapurna Mills", City: "Burdwan"},
	}, nil).Once()
	dir.On("Products", ctx, mock.Anything).Return(map[kernel.UUID]directory.Product{
		newer.ProductID(): {ID: newer.ProductID(), Type: "Sona Masoori"},
	}, nil).Once()

	query, err := queries.NewListOrdersQuery(seller, identity.RoleSeller)
	require.NoError(t, err)

	// When listing
	got, err := queries.NewListOrdersQueryHandler(reader, dir, services.NewAccessPolicy()).Handle(ctx, query)

	// Then the repository order is kept and summaries are attached
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID().String(), got[0].ID)
	assert.Equal(t, older.ID().String(), got[1].ID)
	require.NotNil(t, got[0].Seller)
	assert.Equal(t, "Annapurna Mills", got[0].Seller.Name)
	require.NotNil(t, got[0].Product)
	assert.Equal(t, "Sona Masoori", got[0].Product.Type)
	assert.Nil(t, got[1].Product)
	mock.AssertExpectationsForObjects(t, reader, dir)
}

func TestListOrdersQueryHandler_Handle_BuyerSeesSellerAlias(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	o := newOrder(t, sellerID)
	buyer := newActor(t, identity.RoleBuyer, o.BuyerID())

	reader := new(MockOrderReader)
	dir := new(MockDirectory)
	reader.On("ListByBuyer", ctx, o.BuyerID()).Return([]*order.Order{o}, nil).Once()
	dir.On("Parties", ctx, mock.Anything).Return(map[kernel.UUID]directory.Party{
		sellerID: {ID: sellerID, Name: "Annapurna Mills", Phone: "+91", City: "Burdwan"},
	}, nil).Once()
	dir.On("Products", ctx, mock.Anything).Return(map[kernel.UUID]directory.Product{}, nil).Once()

	query, err := queries.NewListOrdersQuery(buyer, identity.RoleBuyer)
	require.NoError(t, err)

	got, err := queries.NewListOrdersQueryHandler(reader, dir, services.NewAccessPolicy()).Handle(ctx, query)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, services.SellerAlias("Burdwan", sellerID), got[0].Seller.Name)
	assert.Empty(t, got[0].Seller.Phone)
}

func TestListOrdersQueryHandler_Handle_OtherRoleIsForbidden(t *testing.T) {
	ctx := t.Context()

	buyer := newActor(t, identity.RoleBuyer, kernel.NewUUID())
	reader := new(MockOrderReader)
	dir := new(MockDirectory)

	query, err := queries.NewListOrdersQuery(buyer, identity.RoleSeller)
	require.NoError(t, err)

	_, err = queries.NewListOrdersQueryHandler(reader, dir, services.NewAccessPolicy()).Handle(ctx, query)

	require.ErrorIs(t, err, errs.ErrForbidden)
	reader.AssertNotCalled(t, "ListBySeller", mock.Anything, mock.Anything)
}

func TestListOrdersQueryHandler_Handle_EmptySkipsDirectory(t *testing.T) {
	ctx := t.Context()

	carrier := newActor(t, identity.RoleLogistics, kernel.NewUUID())
	reader := new(MockOrderReader)
	dir := new(MockDirectory)
	reader.On("ListByProvider", ctx, carrier.ID()).Return([]*order.Order{}, nil).Once()

	query, err := queries.NewListOrdersQuery(carrier, identity.RoleLogistics)
	require.NoError(t, err)

	got, err := queries.NewListOrdersQueryHandler(reader, dir, services.NewAccessPolicy()).Handle(ctx, query)

	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	dir.AssertNotCalled(t, "Parties", mock.Anything, mock.Anything)
}

func TestListOrdersQueryHandler_Handle_DirectoryError(t *testing.T) {
	ctx := t.Context()

	sellerID := kernel.NewUUID()
	seller := newActor(t, identity.RoleSeller, sellerID)
	reader := new(MockOrderReader)
	dir := new(MockDirectory)
	reader.On("ListBySeller", ctx, sellerID).Return([]*order.Order{newOrder(t, sellerID)}, nil).Once()
	dir.On("Parties", ctx, mock.Anything).Return(nil, errors.New("directory down")).Once()

	query, err := queries.NewListOrdersQuery(seller, identity.RoleSeller)
	require.NoError(t, err)

	_, err = queries.NewListOrdersQueryHandler(reader, dir, services.NewAccessPolicy()).Handle(ctx, query)

	require.EqualError(t, err, "directory down")
}

func TestListOrdersQuery_Validate(t *testing.T) {
	var query queries.ListOrdersQuery
	require.ErrorIs(t, query.Validate(), queries.ErrListOrdersQueryIsNotConstructed)

	_, err := queries.NewListOrdersQuery(identity.Actor{}, identity.RoleSeller)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewListOrdersQuery(newActor(t, identity.RoleSeller, kernel.NewUUID()), identity.RoleUnknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
