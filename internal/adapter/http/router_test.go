package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/YelzhanWeb/restaurant/internal/adapter/token"
	"github.com/YelzhanWeb/restaurant/internal/app/admin"
	"github.com/YelzhanWeb/restaurant/internal/app/auth"
	"github.com/YelzhanWeb/restaurant/internal/app/menu"
	"github.com/YelzhanWeb/restaurant/internal/app/order"
	"github.com/YelzhanWeb/restaurant/internal/app/payment"
	"github.com/YelzhanWeb/restaurant/internal/app/tracking"
	"github.com/YelzhanWeb/restaurant/internal/apptest"
	"github.com/YelzhanWeb/restaurant/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type testAPI struct {
	t       *testing.T
	store   *apptest.Store
	handler http.Handler
	plov    int64
	lagman  int64
	kumis   int64
}

func newTestAPI(t *testing.T, db pinger) *testAPI {
	t.Helper()

	store := apptest.NewStore()
	pub := &apptest.Publisher{}
	log := apptest.Logger()
	issuer := token.NewIssuer("test-secret-test-secret-test-secret", "restaurant", 5*time.Minute, time.Hour)

	api := &testAPI{t: t, store: store}
	api.plov = store.AddMenuItem("Plov", domain.CategoryMainCourse, "200", true)
	api.lagman = store.AddMenuItem("Lagman", domain.CategoryMainCourse, "150", true)
	api.kumis = store.AddMenuItem("Kumis", domain.CategoryBeverage, "80", false)

	api.handler = NewRouter(Services{
		Menu:     menu.NewService(store.Menu(), log),
		Orders:   order.NewService(store.Orders(), store.Menu(), pub, log),
		Tracking: tracking.NewService(store.Orders(), pub, log),
		Payments: payment.NewService(store.Payments(), pub, log),
		Admin:    admin.NewService(store.Reports(), store.Orders(), time.UTC, log),
		Auth:     auth.NewService(store.Users(), issuer, bcrypt.MinCost, log),
		Health:   db,
	}, log)
	return api
}

func (a *testAPI) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			a.t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// login registers a staff account and returns its access token.
func (a *testAPI) login(username string) string {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/register/", "", map[string]string{"username": username, "password": "s3cret-pass"})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("register: status %d, body %s", rec.Code, rec.Body)
	}
	var resp authResponse
	decode(a.t, rec, &resp)
	return resp.Token.Access
}

func (a *testAPI) placeOrder(items ...orderItemRequest) orderResponse {
	a.t.Helper()
	rec := a.do(http.MethodPost, "/orders/", "", createOrderRequest{
		CustomerName:  "Dana",
		TableNumber:   5,
		PhoneNumber:   "+77010000000",
		PaymentMethod: "online",
		Items:         items,
	})
	if rec.Code != http.StatusCreated {
		a.t.Fatalf("create order: status %d, body %s", rec.Code, rec.Body)
	}
	var resp orderResponse
	decode(a.t, rec, &resp)
	return resp
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

func TestCreateOrder(t *testing.T) {
	api := newTestAPI(t, pinger{})

	order := api.placeOrder(
		orderItemRequest{MenuItemID: api.plov, Quantity: 2},
		orderItemRequest{MenuItemID: api.lagman, Quantity: 1},
	)

	if order.Subtotal != "550.00" || order.Tax != "27.50" || order.DeliveryCharge != "0.00" || order.TotalAmount != "577.50" {
		t.Errorf("totals = %s/%s/%s/%s, want 550.00/27.50/0.00/577.50",
			order.Subtotal, order.Tax, order.DeliveryCharge, order.TotalAmount)
	}
	if !strings.HasPrefix(order.OrderID, "ORD-") {
		t.Errorf("order_id = %q", order.OrderID)
	}
	if order.Status != "pending" || order.PaymentStatus != "pending" {
		t.Errorf("state = %s/%s", order.Status, order.PaymentStatus)
	}
	if len(order.Items) != 2 || order.Items[0].MenuItem == nil || order.Items[0].MenuItem.Name != "Plov" {
		t.Fatalf("items = %+v", order.Items)
	}
	if order.Items[0].LineTotal != "400.00" {
		t.Errorf("line total = %s, want 400.00", order.Items[0].LineTotal)
	}

	rec := api.do(http.MethodGet, "/orders/"+order.OrderID+"/", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET order: status %d", rec.Code)
	}

	rec = api.do(http.MethodGet, "/orders/", "", nil)
	var list []orderResponse
	decode(t, rec, &list)
	if len(list) != 1 || list[0].OrderID != order.OrderID {
		t.Errorf("list = %+v", list)
	}
}

func TestCreateOrder_BadRequests(t *testing.T) {
	api := newTestAPI(t, pinger{})

	tests := []struct {
		name      string
		body      interface{}
		wantCode  int
		wantField string
	}{
		{
			name:      "malformed json",
			body:      `{"customer_name": `,
			wantCode:  http.StatusBadRequest,
			wantField: "body",
		},
		{
			name:      "missing customer name",
			body:      createOrderRequest{TableNumber: 1, PhoneNumber: "1", PaymentMethod: "cod", Items: []orderItemRequest{{MenuItemID: api.plov, Quantity: 1}}},
			wantCode:  http.StatusBadRequest,
			wantField: "customer_name",
		},
		{
			name:     "unknown item",
			body:     createOrderRequest{CustomerName: "A", TableNumber: 1, PhoneNumber: "1", PaymentMethod: "cod", Items: []orderItemRequest{{MenuItemID: 404, Quantity: 1}}},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(http.MethodPost, "/orders/", "", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d; body %s", rec.Code, tt.wantCode, rec.Body)
			}

			var resp ErrorResponse
			decode(t, rec, &resp)
			if resp.RequestID == "" || resp.RequestID != rec.Header().Get("X-Request-ID") {
				t.Errorf("request_id = %q, header = %q", resp.RequestID, rec.Header().Get("X-Request-ID"))
			}
			if tt.wantField == "" {
				return
			}
			for _, e := range resp.Errors {
				if e.Field == tt.wantField {
					return
				}
			}
			t.Errorf("errors %+v do not mention %q", resp.Errors, tt.wantField)
		})
	}

	if n := api.store.OrderCount(); n != 0 {
		t.Errorf("stored %d orders, want 0", n)
	}
}

func TestCreateOrder_UnavailableItem(t *testing.T) {
	api := newTestAPI(t, pinger{})

	order := api.placeOrder(orderItemRequest{MenuItemID: api.kumis, Quantity: 1})
	if order.Items[0].Price != "80.00" || order.TotalAmount != "134.00" {
		t.Errorf("price = %s, total = %s; want 80.00 and 134.00", order.Items[0].Price, order.TotalAmount)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	api := newTestAPI(t, pinger{})

	for _, path := range []string{"/orders/ORD-20240101-ABCDEF/", "/orders/ORD-20240101-ABCDEF/track/", "/orders/ORD-20240101-ABCDEF/history/"} {
		if rec := api.do(http.MethodGet, path, "", nil); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s: status %d, want 404", path, rec.Code)
		}
	}
}

func TestProtectedRoutes(t *testing.T) {
	api := newTestAPI(t, pinger{})
	order := api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})

	routes := []struct{ method, path string }{
		{http.MethodPatch, "/orders/" + order.OrderID + "/update_status/"},
		{http.MethodDelete, "/orders/" + order.OrderID + "/"},
		{http.MethodPost, "/menu-items/"},
		{http.MethodDelete, "/menu-items/1/"},
		{http.MethodGet, "/admin/dashboard/"},
		{http.MethodGet, "/admin/orders/"},
		{http.MethodGet, "/admin/menu-stats/"},
	}

	for _, tt := range routes {
		for _, bearer := range []string{"", "not-a-token"} {
			rec := api.do(tt.method, tt.path, bearer, `{}`)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("%s %s (token %q): status %d, want 401", tt.method, tt.path, bearer, rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") == "" {
				t.Errorf("%s %s: missing WWW-Authenticate", tt.method, tt.path)
			}
		}
	}
}

func TestUpdateStatus(t *testing.T) {
	api := newTestAPI(t, pinger{})
	access := api.login("chef")
	order := api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})
	path := "/orders/" + order.OrderID + "/update_status/"

	rec := api.do(http.MethodPatch, path, access, updateStatusRequest{Status: "confirmed"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", rec.Code, rec.Body)
	}
	var change statusUpdateResponse
	decode(t, rec, &change)
	if change.OrderID != order.OrderID || change.OldStatus != "pending" || change.NewStatus != "confirmed" {
		t.Errorf("response = %+v", change)
	}

	if rec := api.do(http.MethodPatch, path, access, updateStatusRequest{Status: "completed"}); rec.Code != http.StatusConflict {
		t.Errorf("skipping states: status %d, want 409", rec.Code)
	}
	if rec := api.do(http.MethodPatch, path, access, updateStatusRequest{Status: "shipped"}); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown status: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodGet, "/orders/"+order.OrderID+"/history/", "", nil)
	var history []statusLogResponse
	decode(t, rec, &history)
	if len(history) != 2 {
		t.Fatalf("history = %+v, want 2 entries", history)
	}
	if history[1].Status != "confirmed" || history[1].ChangedBy != "chef" {
		t.Errorf("last entry = %+v, want confirmed by chef", history[1])
	}

	rec = api.do(http.MethodGet, "/orders/"+order.OrderID+"/track/", "", nil)
	var tracked orderResponse
	decode(t, rec, &tracked)
	if tracked.Status != "confirmed" {
		t.Errorf("tracked status = %s, want confirmed", tracked.Status)
	}
}

func TestDeleteOrder(t *testing.T) {
	api := newTestAPI(t, pinger{})
	access := api.login("manager")
	order := api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})

	if rec := api.do(http.MethodDelete, "/orders/"+order.OrderID+"/", access, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	if rec := api.do(http.MethodGet, "/orders/"+order.OrderID+"/", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("after delete: status %d, want 404", rec.Code)
	}
}

func TestProcessPayment(t *testing.T) {
	api := newTestAPI(t, pinger{})
	order := api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})
	if order.TotalAmount != "260.00" {
		t.Fatalf("total = %s, want 260.00", order.TotalAmount)
	}

	body := `{"order_id":"` + order.OrderID + `","transaction_id":"TX-1","payment_method":"card","amount":"260.00"}`

	rec := api.do(http.MethodPost, "/payments/process_payment/", "", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first payment: status %d, body %s", rec.Code, rec.Body)
	}
	var paid paymentResponse
	decode(t, rec, &paid)
	if paid.Order != order.OrderID || paid.Amount != "260.00" || paid.Status != "completed" {
		t.Errorf("payment = %+v", paid)
	}

	rec = api.do(http.MethodPost, "/payments/process_payment/", "", body)
	if rec.Code != http.StatusOK {
		t.Errorf("replay: status %d, want 200", rec.Code)
	}

	other := `{"order_id":"` + order.OrderID + `","transaction_id":"TX-2","payment_method":"card","amount":260}`
	if rec := api.do(http.MethodPost, "/payments/process_payment/", "", other); rec.Code != http.StatusConflict {
		t.Errorf("second transaction: status %d, want 409", rec.Code)
	}

	rec = api.do(http.MethodGet, "/orders/"+order.OrderID+"/", "", nil)
	var after orderResponse
	decode(t, rec, &after)
	if after.Status != "confirmed" || after.PaymentStatus != "completed" {
		t.Errorf("order after payment = %s/%s", after.Status, after.PaymentStatus)
	}

	rec = api.do(http.MethodGet, "/payments/by_order/?order_id="+order.OrderID, "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("by_order: status %d", rec.Code)
	}
	if rec := api.do(http.MethodGet, "/payments/by_order/", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("by_order without order_id: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodGet, "/payments/", "", nil)
	var list []paymentResponse
	decode(t, rec, &list)
	if len(list) != 1 {
		t.Errorf("payments = %d, want 1", len(list))
	}
	if rec := api.do(http.MethodGet, "/payments/999/", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown payment: status %d, want 404", rec.Code)
	}
}

func TestProcessPayment_WrongAmount(t *testing.T) {
	api := newTestAPI(t, pinger{})
	order := api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})

	body := `{"order_id":"` + order.OrderID + `","transaction_id":"TX-1","payment_method":"card","amount":"100.00"}`
	if rec := api.do(http.MethodPost, "/payments/process_payment/", "", body); rec.Code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", rec.Code)
	}
}

func TestMenuItems(t *testing.T) {
	api := newTestAPI(t, pinger{})
	access := api.login("admin")

	rec := api.do(http.MethodPost, "/menu-items/", access, `{"name":"Baursak","category":"dessert","price":"35.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body)
	}
	var created menuItemResponse
	decode(t, rec, &created)
	if created.Price != "35.50" || !created.IsAvailable {
		t.Errorf("created = %+v", created)
	}

	if rec := api.do(http.MethodPost, "/menu-items/", access, `{"name":"Tea","category":"beverage"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("create without price: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodPatch, "/menu-items/"+itoa(created.ID)+"/", access, `{"price":"40"}`)
	var patched menuItemResponse
	decode(t, rec, &patched)
	if rec.Code != http.StatusOK || patched.Price != "40.00" || patched.Name != "Baursak" {
		t.Errorf("patch: status %d, item %+v", rec.Code, patched)
	}

	if rec := api.do(http.MethodPut, "/menu-items/"+itoa(created.ID)+"/", access, `{"name":"Baursak"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("put without category and price: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodGet, "/menu-items/available/", "", nil)
	var available []menuItemResponse
	decode(t, rec, &available)
	if len(available) != 3 {
		t.Errorf("available = %d items, want 3", len(available))
	}

	rec = api.do(http.MethodGet, "/menu-items/?category=beverage", "", nil)
	var beverages []menuItemResponse
	decode(t, rec, &beverages)
	if len(beverages) != 1 || beverages[0].Name != "Kumis" {
		t.Errorf("beverages = %+v", beverages)
	}
	if rec := api.do(http.MethodGet, "/menu-items/?category=soup", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodGet, "/menu-items/by_category/", "", nil)
	var grouped map[string][]menuItemResponse
	decode(t, rec, &grouped)
	for _, c := range domain.Categories {
		if _, ok := grouped[string(c)]; !ok {
			t.Errorf("by_category misses %q", c)
		}
	}
	if len(grouped["beverage"]) != 1 || grouped["beverage"][0].Name != "Kumis" || grouped["beverage"][0].IsAvailable {
		t.Errorf("beverage = %+v, want the unavailable Kumis", grouped["beverage"])
	}

	if rec := api.do(http.MethodDelete, "/menu-items/"+itoa(created.ID)+"/", access, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
	if rec := api.do(http.MethodGet, "/menu-items/"+itoa(created.ID)+"/", "", nil); rec.Code != http.StatusNotFound {
		t.Errorf("after delete: status %d, want 404", rec.Code)
	}

	api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})
	if rec := api.do(http.MethodDelete, "/menu-items/"+itoa(api.plov)+"/", access, nil); rec.Code != http.StatusConflict {
		t.Errorf("delete referenced item: status %d, want 409", rec.Code)
	}
}

func TestAdmin(t *testing.T) {
	api := newTestAPI(t, pinger{})
	access := api.login("owner")
	api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1})
	api.placeOrder(orderItemRequest{MenuItemID: api.plov, Quantity: 1}, orderItemRequest{MenuItemID: api.lagman, Quantity: 1})

	rec := api.do(http.MethodGet, "/admin/dashboard/", access, nil)
	var dash dashboardResponse
	decode(t, rec, &dash)
	if dash.TotalOrders != 2 || dash.TodayOrders != 2 {
		t.Errorf("dashboard counts = %d/%d, want 2/2", dash.TotalOrders, dash.TodayOrders)
	}
	if len(dash.PopularItems) == 0 || dash.PopularItems[0].Name != "Plov" || dash.PopularItems[0].OrderCount != 2 {
		t.Errorf("popular = %+v", dash.PopularItems)
	}

	rec = api.do(http.MethodGet, "/admin/orders/?status=pending", access, nil)
	var orders []orderResponse
	decode(t, rec, &orders)
	if len(orders) != 2 {
		t.Errorf("pending orders = %d, want 2", len(orders))
	}
	if rec := api.do(http.MethodGet, "/admin/orders/?date=17-10-2026", access, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad date: status %d, want 400", rec.Code)
	}

	rec = api.do(http.MethodGet, "/admin/menu-stats/", access, nil)
	var stats menuStatsResponse
	decode(t, rec, &stats)
	if stats.TotalItems != 3 || stats.AvailableItems != 2 || stats.UnavailableItems != 1 {
		t.Errorf("menu stats = %+v", stats)
	}
}

func TestAuthFlow(t *testing.T) {
	api := newTestAPI(t, pinger{})

	rec := api.do(http.MethodPost, "/register/", "", map[string]string{"username": "aida", "password": "pa55word", "email": "aida@example.com"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status %d, body %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("register response leaks password: %s", rec.Body)
	}

	if rec := api.do(http.MethodPost, "/register/", "", map[string]string{"username": "aida", "password": "x"}); rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate username: status %d, want 400", rec.Code)
	}
	if rec := api.do(http.MethodPost, "/register/", "", map[string]string{"username": "Aida", "password": "pa55word"}); rec.Code != http.StatusCreated {
		t.Errorf("username differing only in case: status %d, want 201", rec.Code)
	}
	if rec := api.do(http.MethodPost, "/login/", "", map[string]string{"username": "AIDA", "password": "pa55word"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("login with other case: status %d, want 401", rec.Code)
	}
	if rec := api.do(http.MethodPost, "/login/", "", map[string]string{"username": "aida", "password": "wrong"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password: status %d, want 401", rec.Code)
	}

	rec = api.do(http.MethodPost, "/login/", "", map[string]string{"username": "aida", "password": "pa55word"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d", rec.Code)
	}
	var login authResponse
	decode(t, rec, &login)
	if login.User.LastLogin == nil || login.Token.Refresh == "" {
		t.Errorf("login response = %+v", login)
	}

	rec = api.do(http.MethodPost, "/token/refresh/", "", refreshRequest{Refresh: login.Token.Refresh})
	var refreshed accessResponse
	decode(t, rec, &refreshed)
	if rec.Code != http.StatusOK || refreshed.Access == "" {
		t.Fatalf("refresh: status %d, body %s", rec.Code, rec.Body)
	}
	if rec := api.do(http.MethodGet, "/admin/menu-stats/", refreshed.Access, nil); rec.Code != http.StatusOK {
		t.Errorf("refreshed access token rejected: status %d", rec.Code)
	}
	if rec := api.do(http.MethodGet, "/admin/menu-stats/", login.Token.Refresh, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh token accepted as access: status %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	if rec := newTestAPI(t, pinger{}).do(http.MethodGet, "/health", "", nil); rec.Code != http.StatusOK {
		t.Errorf("healthy: status %d", rec.Code)
	}
	if rec := newTestAPI(t, pinger{err: errors.New("connection refused")}).do(http.MethodGet, "/health", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("db down: status %d, want 503", rec.Code)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	api := newTestAPI(t, pinger{})

	req := httptest.NewRequest(http.MethodGet, "/orders/missing/", nil)
	req.Header.Set("X-Request-ID", "req-from-gateway")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "req-from-gateway" {
		t.Errorf("X-Request-ID = %q", got)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.RequestID != "req-from-gateway" {
		t.Errorf("request_id = %q", resp.RequestID)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	h := RecoveryMiddleware(apptest.Logger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Error != "Internal server error" {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t, pinger{})
	if rec := api.do(http.MethodPut, "/orders/", "", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /orders/: status %d, want 405", rec.Code)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
