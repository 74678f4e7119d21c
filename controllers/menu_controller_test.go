// file: controllers/menu_controller_test.go
package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"catering-admin/apperr"
	"catering-admin/models"
	"catering-admin/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type menuFixture struct {
	log    *callLog
	gw     *fakeGateway[models.MenuItem]
	store  *recordingStore
	client *testClient
}

func setupMenu(t *testing.T) *menuFixture {
	log := &callLog{}
	f := &menuFixture{log: log, gw: newFakeGateway[models.MenuItem](log), store: newRecordingStore(log)}

	mc := NewMenuController(testSite, f.gw, services.NewUploadPipeline(f.store, nil), services.NewInFlight())
	router := setupTestRouter(t)
	router.GET("/menu", mc.List)
	router.POST("/menu", mc.Create)
	router.POST("/menu/:id", mc.Update)
	router.POST("/menu/:id/toggle", mc.ToggleAvailability)

	f.client = newTestClient(t, router)
	f.client.loginAs("a1", "Owner", "owner@example.com")
	return f
}

func menuFields() map[string]string {
	return map[string]string{
		"hindi_name":   "Dal Makhani",
		"english_name": "Black lentils",
		"price":        "12.5",
		"category":     "Mains",
		"available":    "true",
	}
}

func TestMenuCreate_UploadsBeforeInsert(t *testing.T) {
	f := setupMenu(t)

	w := f.client.postMultipart("/menu", menuFields(), &testFile{
		field: "image", filename: "dal makhani.png", contentType: "image/png", data: pngBytes(2048),
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	assert.Equal(t, []string{"upload:menu-images", "insert"}, f.log.writes())
	require.Len(t, f.gw.inserted, 1)
	row := f.gw.inserted[0]
	assert.Equal(t, "Dal Makhani", row.HindiName)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, row.Available)
	assert.True(t, strings.HasPrefix(row.ImageURL, "http://test/media/menu-images/"), row.ImageURL)
	assert.True(t, strings.HasSuffix(row.ImageURL, "-dalmakhani.png"), "whitespace is removed from the key")
	assert.Equal(t, 1, f.store.Len())
}

func TestMenuCreate_UncheckedIsUnavailable(t *testing.T) {
	f := setupMenu(t)
	fields := menuFields()
	delete(fields, "available")

	w := f.client.postMultipart("/menu", fields, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Len(t, f.gw.inserted, 1)
	assert.False(t, f.gw.inserted[0].Available, "an unchecked box means unavailable")
}

func TestMenuCreate_FailedSubmitKeepsUncheckedBox(t *testing.T) {
	f := setupMenu(t)
	fields := menuFields()
	delete(fields, "available")
	fields["price"] = "abc"

	w := f.client.postMultipart("/menu", fields, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "form-available=false")
}

func TestMenuList_NewDialogStartsAvailable(t *testing.T) {
	f := setupMenu(t)
	w := f.client.get("/menu?new=1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "form-available=true")
}

func TestMenuCreate_OversizedImage(t *testing.T) {
	f := setupMenu(t)

	w := f.client.postMultipart("/menu", menuFields(), &testFile{
		field: "image", filename: "big.png", contentType: "image/png", data: pngBytes(6 << 20),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Image must be 5 MB or smaller")
	assert.Empty(t, f.log.writes(), "no upload and no insert")
	assert.Equal(t, 0, f.store.Len())
}

func TestMenuCreate_NotAnImage(t *testing.T) {
	f := setupMenu(t)

	w := f.client.postMultipart("/menu", menuFields(), &testFile{
		field: "image", filename: "menu.pdf", contentType: "application/pdf", data: []byte("%PDF-1.4"),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please select an image file")
	assert.Empty(t, f.log.writes())
}

func TestMenuCreate_UploadFailureSkipsInsert(t *testing.T) {
	f := setupMenu(t)
	f.store.FailWith(errors.New("bucket unavailable"))

	w := f.client.postMultipart("/menu", menuFields(), &testFile{
		field: "image", filename: "dal.png", contentType: "image/png", data: pngBytes(64),
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to upload image")
	assert.Equal(t, []string{"upload:menu-images"}, f.log.writes())
}

func TestMenuCreate_InvalidPrice(t *testing.T) {
	f := setupMenu(t)
	fields := menuFields()
	fields["price"] = "-3"

	w := f.client.postMultipart("/menu", fields, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "error[price]=Must be a number of 0 or more")
	assert.Empty(t, f.log.writes())
}

func TestMenuUpdate_KeepsImageWithoutUpload(t *testing.T) {
	f := setupMenu(t)

	w := f.client.postForm("/menu/m1", url.Values{"hindi_name": {"Paneer Tikka"}, "price": {"9"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	assert.Equal(t, []string{"update:m1"}, f.log.writes())
	assert.NotContains(t, f.gw.lastPatch, "image")
	assert.Equal(t, false, f.gw.lastPatch["available"], "an unchecked box means unavailable")
	assert.Equal(t, "Paneer Tikka", f.gw.lastPatch["hindi_name"])
}

func TestMenuUpdate_NewImageReplacesOld(t *testing.T) {
	f := setupMenu(t)

	w := f.client.postMultipart("/menu/m1", menuFields(), &testFile{
		field: "image", filename: "new.jpg", contentType: "image/jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []string{"upload:menu-images", "update:m1"}, f.log.writes())
	assert.Contains(t, f.gw.lastPatch["image"], "http://test/media/menu-images/")
}

func TestToggleAvailability(t *testing.T) {
	cases := []struct {
		shown  string
		next   bool
		notice string
	}{
		{"true", false, "Menu item disabled successfully"},
		{"false", true, "Menu item enabled successfully"},
	}
	for _, tc := range cases {
		t.Run(tc.shown, func(t *testing.T) {
			f := setupMenu(t)

			w := f.client.postForm("/menu/m1/toggle", url.Values{"available": {tc.shown}})
			require.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, "/menu", w.Header().Get("Location"))
			assert.Equal(t, map[string]any{"available": tc.next}, f.gw.lastPatch)
			assert.Contains(t, f.client.get("/menu").Body.String(), "notice=success:"+tc.notice)
		})
	}
}

func TestToggleAvailability_Failure(t *testing.T) {
	f := setupMenu(t)
	f.gw.err = apperr.Save("menu item", errors.New("timeout"))

	w := f.client.postForm("/menu/m1/toggle", url.Values{"available": {"true"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	f.gw.err = nil
	assert.Contains(t, f.client.get("/menu").Body.String(), "notice=error:Error:Failed to update menu item")
}

func TestMenuList_Counts(t *testing.T) {
	f := setupMenu(t)
	f.gw.rows = []models.MenuItem{
		{ID: "m1", HindiName: "Dal", Available: true},
		{ID: "m2", HindiName: "Kheer", Available: false},
		{ID: "m3", HindiName: "Naan", Available: true},
	}

	w := f.client.get("/menu")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "available=2/3")
}

func TestMenuItemForm_Row(t *testing.T) {
	f := &MenuItemForm{HindiName: " Kheer ", Price: "4.999", Category: ""}
	row := f.Row()
	assert.Equal(t, "Kheer", row.HindiName)
	assert.Equal(t, "5.00", row.Price.StringFixed(2))
	assert.Equal(t, models.UncategorizedLabel, row.CategoryLabel())

	f.SetImageURL("http://test/x.png")
	assert.Equal(t, "http://test/x.png", f.Patch()["image"])
}
