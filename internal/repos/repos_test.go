package repos

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kriya/internal/domain"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestOpenDBSeedsOnce(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, seedIfEmpty(db))
	require.NoError(t, seedUsers(db))

	cats, err := NewCategoryRepo(db).List()
	require.NoError(t, err)
	assert.Len(t, cats, 4)

	var users int
	require.NoError(t, db.Get(&users, `SELECT COUNT(*) FROM users`))
	assert.Equal(t, 3, users)
}

func TestCategoryRepoCountsActiveProducts(t *testing.T) {
	db := openTestDB(t)
	cats := NewCategoryRepo(db)

	c, err := cats.Get("tenun")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Products)

	_, err = db.Exec(`UPDATE products SET active = 0 WHERE id = 'songket-02'`)
	require.NoError(t, err)
	c, err = cats.Get("tenun")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Products)

	_, err = cats.Get("lukisan")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestKVRepo(t *testing.T) {
	kv := NewKVRepo(openTestDB(t))

	_, ok, err := kv.Get("cart:s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("cart:s1", `[]`))
	require.NoError(t, kv.Set("cart:s1", `[{"id":"a"}]`))
	v, ok, err := kv.Get("cart:s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, kv.Remove("cart:s1"))
	require.NoError(t, kv.Remove("cart:s1"))
	_, ok, _ = kv.Get("cart:s1")
	assert.False(t, ok)
}

func TestProductRepo(t *testing.T) {
	prods := NewProductRepo(openTestDB(t))

	p, err := prods.Get("batik-tulis-01")
	require.NoError(t, err)
	assert.Equal(t, 750000.0, p.Price)
	assert.True(t, p.Active)

	_, err = prods.Get("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := prods.ListByCategory("tenun", 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	found, err := prods.Search("ROTAN", "", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "rotan-basket-02", found[0].ID)

	found, err = prods.Search("", "batik", 1, 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestUserRepo(t *testing.T) {
	users := NewUserRepo(openTestDB(t))

	u, err := users.ByEmail("SEKAR@kriya.test")
	require.NoError(t, err)
	assert.Equal(t, "u-sekar", u.ID)
	assert.Equal(t, "081234567890", u.Phone)

	err = users.Create(&domain.User{ID: "u-x", Email: "sekar@kriya.test", Name: "X", Hash: "h", Role: domain.RoleUser})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = users.ByID("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, users.BindSession("sid-1", "u-sekar"))
	su, err := users.SessionUser("sid-1")
	require.NoError(t, err)
	assert.Equal(t, "u-sekar", su.ID)

	require.NoError(t, users.UnbindSession("sid-1"))
	_, err = users.SessionUser("sid-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddressRepoScopesToOwner(t *testing.T) {
	addrs := NewAddressRepo(openTestDB(t))
	a := domain.Address{ID: "a1", UserID: "u-sekar", Recipient: "Sekar", Phone: "081234567890",
		Street: "Jl. Malioboro 12", City: "Yogyakarta", PostalCode: "55271"}
	require.NoError(t, addrs.Create(a))

	got, err := addrs.Get("u-sekar", "a1")
	require.NoError(t, err)
	assert.Equal(t, "Yogyakarta", got.City)

	_, err = addrs.Get("u-bima", "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, addrs.Delete("u-bima", "a1"), domain.ErrNotFound)

	list, err := addrs.ListByUser("u-sekar")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, addrs.Delete("u-sekar", "a1"))
	list, _ = addrs.ListByUser("u-sekar")
	assert.Empty(t, list)
}

func TestOrderRepo(t *testing.T) {
	orders := NewOrderRepo(openTestDB(t))
	o := OrderRow{ID: "o1", SessionID: "sid-1", UserID: "u-bima", Recipient: "Bima", Phone: "081234567890",
		ShipTo: "Jl. Braga 1, Bandung 40111", Subtotal: 1500000, Shipping: 50000, Total: 1550000}
	items := []OrderItemRow{
		{ProductID: "batik-tulis-01", Title: "Batik Tulis Parang Rusak", Size: "M", Color: "Black", Qty: 2, Price: 750000},
	}
	require.NoError(t, orders.Create(o, items))

	got, lines, err := orders.Get("o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPlaced, got.Status)
	assert.Equal(t, 1550000.0, got.Total)
	require.Len(t, lines, 1)
	assert.Equal(t, 1500000.0, lines[0].Subtotal)

	mine, err := orders.ListByUser("u-bima")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	anon, err := orders.ListBySession("sid-1")
	require.NoError(t, err)
	assert.Len(t, anon, 1)

	require.NoError(t, orders.UpdateStatus("o1", domain.OrderShipped))
	all, err := orders.ListLatest(0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.OrderShipped, all[0].Status)

	assert.ErrorIs(t, orders.UpdateStatus("missing", domain.OrderPaid), domain.ErrNotFound)
	_, _, err = orders.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
