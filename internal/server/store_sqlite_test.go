package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crmstock/internal/records"
)

func mustInsertCustomer(t *testing.T, s *SQLiteStore, id int64) {
	t.Helper()
	err := s.InsertCustomer(context.Background(), id, &records.Customer{LegalName: "c"})
	require.NoError(t, err)
}

func TestAllocateIDEmptyCollection(t *testing.T) {
	s := OpenTestStore(t)

	id, err := s.AllocateID(context.Background(), Customers)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestAllocateIDFillsInteriorGap(t *testing.T) {
	s := OpenTestStore(t)
	for _, id := range []int64{1, 2, 4} {
		mustInsertCustomer(t, s, id)
	}

	id, err := s.AllocateID(context.Background(), Customers)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestAllocateIDDenseCollection(t *testing.T) {
	s := OpenTestStore(t)
	for _, id := range []int64{1, 2, 3} {
		mustInsertCustomer(t, s, id)
	}

	id, err := s.AllocateID(context.Background(), Customers)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

// A hole at the very front is not reused: {2,3} allocates 4, not 1.
func TestAllocateIDFrontGapFallsBackToMax(t *testing.T) {
	s := OpenTestStore(t)
	for _, id := range []int64{2, 3} {
		mustInsertCustomer(t, s, id)
	}

	id, err := s.AllocateID(context.Background(), Customers)
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestAllocateIDPerCollection(t *testing.T) {
	s := OpenTestStore(t)
	mustInsertCustomer(t, s, 1)

	// The products collection is still empty and allocates independently.
	id, err := s.AllocateID(context.Background(), Products)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestAllocateIDReusesDeletedID(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	for _, id := range []int64{1, 2, 3} {
		mustInsertCustomer(t, s, id)
	}

	changes, err := s.DeleteCustomer(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, int64(1), changes)

	id, err := s.AllocateID(ctx, Customers)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)
}

func TestInsertDuplicateIDFails(t *testing.T) {
	s := OpenTestStore(t)
	mustInsertCustomer(t, s, 1)

	err := s.InsertCustomer(context.Background(), 1, &records.Customer{LegalName: "dup"})
	require.Error(t, err)
}

func TestInsertSameRecordTwiceYieldsTwoRows(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	rec := &records.Customer{LegalName: "Acme", TaxID: "123"}
	for i := 0; i < 2; i++ {
		id, err := s.AllocateID(ctx, Customers)
		require.NoError(t, err)
		require.NoError(t, s.InsertCustomer(ctx, id, rec))
	}

	list, err := s.ListCustomers(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestListCustomersDefaultOrder(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	require.NoError(t, s.InsertCustomer(ctx, 1, &records.Customer{LegalName: "Zeta"}))
	require.NoError(t, s.InsertCustomer(ctx, 2, &records.Customer{LegalName: "Alpha"}))

	list, err := s.ListCustomers(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].LegalName)
	assert.Equal(t, "Zeta", list[1].LegalName)
}

func TestListCustomersRejectsUnknownSortColumn(t *testing.T) {
	s := OpenTestStore(t)

	_, err := s.ListCustomers(context.Background(), "password_hash", "asc")
	var validation *records.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestSearchCustomersMatchesNameOrTaxID(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	require.NoError(t, s.InsertCustomer(ctx, 1, &records.Customer{LegalName: "Acme Ltda", TaxID: "11222333"}))
	require.NoError(t, s.InsertCustomer(ctx, 2, &records.Customer{LegalName: "Bravo SA", TaxID: "99888777"}))

	byName, err := s.SearchCustomers(ctx, "cme")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, int64(1), byName[0].ID)

	byTax, err := s.SearchCustomers(ctx, "9888")
	require.NoError(t, err)
	require.Len(t, byTax, 1)
	assert.Equal(t, int64(2), byTax[0].ID)
}

func TestSearchProductsByCodeIsExact(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)

	require.NoError(t, s.InsertProduct(ctx, 1, &records.Product{Item: "rack", Code: "RK-10"}))
	require.NoError(t, s.InsertProduct(ctx, 2, &records.Product{Item: "rail", Code: "RK-100"}))

	list, err := s.SearchProductsByCode(ctx, "RK-10")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "rack", list[0].Item)
}

func TestDeleteProductReportsChanges(t *testing.T) {
	ctx := context.Background()
	s := OpenTestStore(t)
	require.NoError(t, s.InsertProduct(ctx, 1, &records.Product{Item: "rack"}))

	changes, err := s.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), changes)

	changes, err = s.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), changes)
}
