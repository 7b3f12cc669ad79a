//go:build e2e

package e2e

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"
)

// fakeAPI is an in-memory BinDist server implementing just enough of the
// API for the CLI round trips: bearer auth, the JSON envelope, inline and
// pre-signed uploads, download URL resolution with checksums, share links,
// customers, activity, and stats.
//
// The storage plane lives on the same listener under /storage/ and /blob/.
// Those handlers reject any request carrying an Authorization header:
// pre-signed grants ride in the URL, and leaking the bearer token to
// storage is exactly the bug these tests exist to catch.
type fakeAPI struct {
	mu sync.Mutex

	apiKey string
	srv    *httptest.Server

	apps      map[string]*fakeApp
	pending   map[string]*pendingUpload
	storage   map[string][]byte
	customers map[string]*fakeCustomer
	activity  []fakeActivity

	nextID int
}

type fakeApp struct {
	id, name, description string
	customerIDs           []string
	deleted               bool
	downloads             int
	versions              map[string]*fakeVersion
}

type fakeVersion struct {
	enabled   bool
	testOnly  bool
	notes     string
	minClient string
	files     []*fakeFile
}

type fakeFile struct {
	id, name string
	content  []byte
	checksum string // advertised to clients; tests may corrupt it
}

type pendingUpload struct {
	appID, version, fileName string
	size                     int64
}

type fakeCustomer struct {
	id, name, parent, notes string
	active                  bool
}

type fakeActivity struct {
	kind, appID, version string
	at                   time.Time
}

func newFakeAPI(apiKey string) *fakeAPI {
	f := &fakeAPI{
		apiKey:    apiKey,
		apps:      map[string]*fakeApp{},
		pending:   map[string]*pendingUpload{},
		storage:   map[string][]byte{},
		customers: map[string]*fakeCustomer{},
	}

	mux := http.NewServeMux()

	// Control plane: every route requires the bearer token.
	mux.HandleFunc("GET /v1/applications", f.auth(f.handleListApps))
	mux.HandleFunc("GET /v1/applications/{app}", f.auth(f.handleGetApp))
	mux.HandleFunc("GET /v1/applications/{app}/stats", f.auth(f.handleStats))
	mux.HandleFunc("GET /v1/applications/{app}/versions", f.auth(f.handleListVersions))
	mux.HandleFunc("GET /v1/applications/{app}/versions/{version}/files", f.auth(f.handleListFiles))
	mux.HandleFunc("PATCH /v1/applications/{app}/versions/{version}", f.auth(f.handleUpdateVersion))
	mux.HandleFunc("POST /v1/management/applications", f.auth(f.handleCreateApp))
	mux.HandleFunc("DELETE /v1/management/applications/{app}", f.auth(f.handleDeleteApp))
	mux.HandleFunc("POST /v1/management/upload", f.auth(f.handleSmallUpload))
	mux.HandleFunc("POST /v1/management/upload/large-url", f.auth(f.handleLargeURL))
	mux.HandleFunc("POST /v1/management/upload/large-complete", f.auth(f.handleLargeComplete))
	mux.HandleFunc("GET /v1/downloads/url", f.auth(f.handleDownloadURL))
	mux.HandleFunc("POST /v1/downloads/share", f.auth(f.handleShare))
	mux.HandleFunc("GET /v1/management/customers", f.auth(f.handleListCustomers))
	mux.HandleFunc("POST /v1/management/customers/{parent}/apikeys", f.auth(f.handleCreateCustomer))
	mux.HandleFunc("PATCH /v1/management/customers/{customer}", f.auth(f.handleUpdateCustomer))
	mux.HandleFunc("GET /v1/activity", f.auth(f.handleActivity))

	// Storage plane: pre-signed URLs, no credentials allowed.
	mux.HandleFunc("PUT /storage/{upload}", f.noAuth(f.handleStoragePut))
	mux.HandleFunc("GET /blob/{app}/{version}/{file}", f.noAuth(f.handleBlobGet))

	f.srv = httptest.NewServer(mux)

	return f
}

func (f *fakeAPI) URL() string { return f.srv.URL }

func (f *fakeAPI) Close() { f.srv.Close() }

// markTestOnly flags a version so it only resolves with the X-Channel
// header set.
func (f *fakeAPI) markTestOnly(appID, version string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if app := f.apps[appID]; app != nil {
		if v := app.versions[version]; v != nil {
			v.testOnly = true
		}
	}
}

// corruptChecksum rewrites the advertised checksum of a version's files so
// downloads fail verification while the stored bytes stay intact.
func (f *fakeAPI) corruptChecksum(appID, version string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if app := f.apps[appID]; app != nil {
		if v := app.versions[version]; v != nil {
			for _, file := range v.files {
				file.checksum = "00000000000000000000000000000000000000000000000000000000deadbeef"
			}
		}
	}
}

func (f *fakeAPI) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+f.apiKey {
			writeFailure(w, http.StatusUnauthorized, "Invalid API key")

			return
		}

		next(w, r)
	}
}

// noAuth guards the storage plane. Storage does not speak the envelope, so
// rejections are plain text like a real provider's.
func (f *fakeAPI) noAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			http.Error(w, "credentials sent to pre-signed URL", http.StatusBadRequest)

			return
		}

		next(w, r)
	}
}

func writeEnvelope(w http.ResponseWriter, data, meta map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"data":    data,
		"error":   nil,
		"meta":    meta,
	})
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"data":    nil,
		"error":   map[string]any{"message": msg},
		"meta":    nil,
	})
}

// pageMeta mirrors the pagination block list endpoints attach.
func pageMeta(r *http.Request, total int) map[string]any {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if size <= 0 {
		size = 20
	}

	return map[string]any{"page": page, "pageSize": size, "total": total}
}

func (f *fakeAPI) newID(prefix string) string {
	f.nextID++

	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeAPI) handleCreateApp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID string   `json:"applicationId"`
		Name          string   `json:"name"`
		CustomerIDs   []string `json:"customerIds"`
		Description   string   `json:"description"`
		Tags          []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if app, ok := f.apps[req.ApplicationID]; ok && !app.deleted {
		writeFailure(w, http.StatusConflict, "Application already exists")

		return
	}

	f.apps[req.ApplicationID] = &fakeApp{
		id:          req.ApplicationID,
		name:        req.Name,
		description: req.Description,
		customerIDs: req.CustomerIDs,
		versions:    map[string]*fakeVersion{},
	}

	writeEnvelope(w, map[string]any{
		"applicationId": req.ApplicationID,
		"name":          req.Name,
	}, nil)
}

func (f *fakeAPI) handleListApps(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	apps := make([]map[string]any, 0, len(f.apps))

	for _, id := range sortedKeys(f.apps) {
		app := f.apps[id]
		if app.deleted {
			continue
		}

		apps = append(apps, map[string]any{"applicationId": app.id, "name": app.name})
	}

	writeEnvelope(w, map[string]any{"applications": apps}, pageMeta(r, len(apps)))
}

func (f *fakeAPI) handleGetApp(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[r.PathValue("app")]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	writeEnvelope(w, map[string]any{
		"applicationId": app.id,
		"name":          app.name,
		"description":   app.description,
	}, nil)
}

func (f *fakeAPI) handleDeleteApp(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[r.PathValue("app")]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	app.deleted = true

	writeEnvelope(w, map[string]any{"applicationId": app.id, "deleted": true}, nil)
}

func (f *fakeAPI) handleStats(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[r.PathValue("app")]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	writeEnvelope(w, map[string]any{
		"applicationId":  app.id,
		"totalDownloads": app.downloads,
	}, nil)
}

func (f *fakeAPI) handleListVersions(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[r.PathValue("app")]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	testChannel := r.Header.Get("X-Channel") == "Test"

	names := sortedKeys(app.versions)
	sort.Sort(sort.Reverse(sort.StringSlice(names))) // newest-ish first

	versions := make([]map[string]any, 0, len(names))
	notes := make([]string, 0, len(names))

	for _, name := range names {
		v := app.versions[name]
		if v.testOnly && !testChannel {
			continue
		}

		versions = append(versions, map[string]any{
			"version":       name,
			"isEnabled":     v.enabled,
			"isTestChannel": v.testOnly,
			"releaseNotes":  v.notes,
		})

		if v.notes != "" {
			notes = append(notes, v.notes)
		}
	}

	data := map[string]any{"versions": versions}
	if r.URL.Query().Get("changelog") != "" {
		data["changelog"] = notes
	}

	writeEnvelope(w, data, nil)
}

func (f *fakeAPI) handleListFiles(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.lookupVersion(r.PathValue("app"), r.PathValue("version"))
	if v == nil {
		writeFailure(w, http.StatusNotFound, "Version not found")

		return
	}

	files := make([]map[string]any, 0, len(v.files))
	for _, file := range v.files {
		files = append(files, map[string]any{
			"fileId":   file.id,
			"fileName": file.name,
			"fileSize": len(file.content),
		})
	}

	writeEnvelope(w, map[string]any{"files": files}, nil)
}

func (f *fakeAPI) handleUpdateVersion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IsEnabled            *bool   `json:"isEnabled"`
		IsActive             *bool   `json:"isActive"`
		ReleaseNotes         *string `json:"releaseNotes"`
		MinimumClientVersion *string `json:"minimumClientVersion"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.lookupVersion(r.PathValue("app"), r.PathValue("version"))
	if v == nil {
		writeFailure(w, http.StatusNotFound, "Version not found")

		return
	}

	if req.IsEnabled != nil {
		v.enabled = *req.IsEnabled
	}

	if req.ReleaseNotes != nil {
		v.notes = *req.ReleaseNotes
	}

	if req.MinimumClientVersion != nil {
		v.minClient = *req.MinimumClientVersion
	}

	writeEnvelope(w, map[string]any{
		"applicationId": r.PathValue("app"),
		"version":       r.PathValue("version"),
	}, nil)
}

func (f *fakeAPI) handleSmallUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID string `json:"applicationId"`
		Version       string `json:"version"`
		FileName      string `json:"fileName"`
		FileContent   string `json:"fileContent"`
		FileType      string `json:"fileType"`
		ReleaseNotes  string `json:"releaseNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	content, err := base64.StdEncoding.DecodeString(req.FileContent)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "fileContent is not valid base64")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[req.ApplicationID]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	file := f.attachFile(app, req.Version, req.FileName, content, req.ReleaseNotes)

	writeEnvelope(w, map[string]any{
		"applicationId": req.ApplicationID,
		"version":       req.Version,
		"fileId":        file.id,
		"fileName":      file.name,
		"fileSize":      len(content),
	}, nil)
}

func (f *fakeAPI) handleLargeURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID string `json:"applicationId"`
		Version       string `json:"version"`
		FileName      string `json:"fileName"`
		FileSize      int64  `json:"fileSize"`
		ContentType   string `json:"contentType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[req.ApplicationID]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	id := f.newID("u")
	f.pending[id] = &pendingUpload{
		appID:    req.ApplicationID,
		version:  req.Version,
		fileName: req.FileName,
		size:     req.FileSize,
	}

	writeEnvelope(w, map[string]any{
		"uploadId":  id,
		"uploadUrl": f.srv.URL + "/storage/" + id,
	}, nil)
}

func (f *fakeAPI) handleStoragePut(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("upload")

	f.mu.Lock()
	_, ok := f.pending[id]
	f.mu.Unlock()

	if !ok {
		http.Error(w, "unknown upload", http.StatusNotFound)

		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "short body", http.StatusBadRequest)

		return
	}

	f.mu.Lock()
	f.storage[id] = body
	f.mu.Unlock()

	w.WriteHeader(http.StatusOK)
}

func (f *fakeAPI) handleLargeComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UploadID      string `json:"uploadId"`
		ApplicationID string `json:"applicationId"`
		Version       string `json:"version"`
		FileName      string `json:"fileName"`
		FileSize      int64  `json:"fileSize"`
		Checksum      string `json:"checksum"`
		ReleaseNotes  string `json:"releaseNotes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.pending[req.UploadID] == nil {
		writeFailure(w, http.StatusNotFound, "Unknown upload session")

		return
	}

	content, ok := f.storage[req.UploadID]
	if !ok {
		writeFailure(w, http.StatusBadRequest, "No bytes received for upload")

		return
	}

	digest := sha256.Sum256(content)
	if int64(len(content)) != req.FileSize || hex.EncodeToString(digest[:]) != req.Checksum {
		writeFailure(w, http.StatusBadRequest, "Checksum verification failed")

		return
	}

	app := f.apps[req.ApplicationID]
	if app == nil || app.deleted {
		writeFailure(w, http.StatusNotFound, "Application not found")

		return
	}

	file := f.attachFile(app, req.Version, req.FileName, content, req.ReleaseNotes)
	delete(f.pending, req.UploadID)
	delete(f.storage, req.UploadID)

	writeEnvelope(w, map[string]any{
		"applicationId": req.ApplicationID,
		"version":       req.Version,
		"fileId":        file.id,
		"fileName":      file.name,
		"fileSize":      len(content),
	}, nil)
}

func (f *fakeAPI) handleDownloadURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	appID := q.Get("applicationId")
	version := q.Get("version")

	f.mu.Lock()
	defer f.mu.Unlock()

	app := f.apps[appID]

	v := f.lookupVersion(appID, version)
	if v == nil || !v.enabled {
		writeFailure(w, http.StatusNotFound, "Version not found")

		return
	}

	if v.testOnly && r.Header.Get("X-Channel") != "Test" {
		writeFailure(w, http.StatusNotFound, "Version not found")

		return
	}

	file := pickFile(v, q.Get("fileId"))
	if file == nil {
		writeFailure(w, http.StatusNotFound, "File not found")

		return
	}

	app.downloads++
	f.activity = append(f.activity, fakeActivity{
		kind: "download", appID: appID, version: version, at: time.Now(),
	})

	writeEnvelope(w, map[string]any{
		"url":       f.blobURL(appID, version, file.id),
		"fileName":  file.name,
		"fileSize":  len(file.content),
		"checksum":  file.checksum,
		"expiresAt": time.Now().Add(15 * time.Minute).UTC().Format(time.RFC3339),
	}, nil)
}

func (f *fakeAPI) handleBlobGet(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.lookupVersion(r.PathValue("app"), r.PathValue("version"))
	if v == nil {
		http.Error(w, "no such blob", http.StatusNotFound)

		return
	}

	file := pickFile(v, r.PathValue("file"))
	if file == nil {
		http.Error(w, "no such blob", http.StatusNotFound)

		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.content)
}

func (f *fakeAPI) handleShare(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApplicationID  string `json:"applicationId"`
		Version        string `json:"version"`
		ExpiresMinutes int    `json:"expiresMinutes"`
		FileID         string `json:"fileId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	if req.ExpiresMinutes < 5 || req.ExpiresMinutes > 1440 {
		writeFailure(w, http.StatusBadRequest, "expiresMinutes out of range")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v := f.lookupVersion(req.ApplicationID, req.Version)
	if v == nil || !v.enabled {
		writeFailure(w, http.StatusNotFound, "Version not found")

		return
	}

	file := pickFile(v, req.FileID)
	if file == nil {
		writeFailure(w, http.StatusNotFound, "File not found")

		return
	}

	expires := time.Now().Add(time.Duration(req.ExpiresMinutes) * time.Minute)

	writeEnvelope(w, map[string]any{
		"url":       f.blobURL(req.ApplicationID, req.Version, file.id) + "?share=" + f.newID("s"),
		"expiresAt": expires.UTC().Format(time.RFC3339),
	}, nil)
}

func (f *fakeAPI) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	customers := make([]map[string]any, 0, len(f.customers))

	for _, id := range sortedKeys(f.customers) {
		c := f.customers[id]
		customers = append(customers, map[string]any{
			"customerId":       c.id,
			"name":             c.name,
			"parentCustomerId": c.parent,
			"isActive":         c.active,
		})
	}

	writeEnvelope(w, map[string]any{"customers": customers}, pageMeta(r, len(customers)))
}

func (f *fakeAPI) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.newID("c")
	f.customers[id] = &fakeCustomer{
		id:     id,
		name:   req.Name,
		parent: r.PathValue("parent"),
		notes:  req.Notes,
		active: true,
	}

	writeEnvelope(w, map[string]any{
		"customerId":       id,
		"name":             req.Name,
		"parentCustomerId": r.PathValue("parent"),
		"apiKey":           fmt.Sprintf("%s.%s", id, f.newID("secret")),
	}, nil)
}

func (f *fakeAPI) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string `json:"name"`
		IsActive *bool   `json:"isActive"`
		Notes    *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Malformed request body")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	c := f.customers[r.PathValue("customer")]
	if c == nil {
		writeFailure(w, http.StatusNotFound, "Customer not found")

		return
	}

	if req.Name != nil {
		c.name = *req.Name
	}

	if req.IsActive != nil {
		c.active = *req.IsActive
	}

	if req.Notes != nil {
		c.notes = *req.Notes
	}

	writeEnvelope(w, map[string]any{"customerId": c.id, "name": c.name}, nil)
}

func (f *fakeAPI) handleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kindFilter := q.Get("type")
	appFilter := q.Get("applicationId")

	f.mu.Lock()
	defer f.mu.Unlock()

	activities := make([]map[string]any, 0, len(f.activity))

	// Newest first.
	for i := len(f.activity) - 1; i >= 0; i-- {
		a := f.activity[i]

		if kindFilter != "" && a.kind != kindFilter {
			continue
		}

		if appFilter != "" && a.appID != appFilter {
			continue
		}

		activities = append(activities, map[string]any{
			"type":          a.kind,
			"applicationId": a.appID,
			"version":       a.version,
			"timestamp":     a.at.UTC().Format(time.RFC3339),
		})
	}

	writeEnvelope(w, map[string]any{"activities": activities}, pageMeta(r, len(activities)))
}

// attachFile records an uploaded artifact on a version, creating the
// version on first upload. Callers hold f.mu.
func (f *fakeAPI) attachFile(app *fakeApp, version, fileName string, content []byte, notes string) *fakeFile {
	v := app.versions[version]
	if v == nil {
		v = &fakeVersion{enabled: true}
		app.versions[version] = v
	}

	if notes != "" {
		v.notes = notes
	}

	digest := sha256.Sum256(content)
	file := &fakeFile{
		id:       f.newID("f"),
		name:     fileName,
		content:  content,
		checksum: hex.EncodeToString(digest[:]),
	}
	v.files = append(v.files, file)

	f.activity = append(f.activity, fakeActivity{
		kind: "upload", appID: app.id, version: version, at: time.Now(),
	})

	return file
}

// lookupVersion resolves a live application's version. Callers hold f.mu.
func (f *fakeAPI) lookupVersion(appID, version string) *fakeVersion {
	app := f.apps[appID]
	if app == nil || app.deleted {
		return nil
	}

	return app.versions[version]
}

func (f *fakeAPI) blobURL(appID, version, fileID string) string {
	return fmt.Sprintf("%s/blob/%s/%s/%s",
		f.srv.URL, url.PathEscape(appID), url.PathEscape(version), url.PathEscape(fileID))
}

// pickFile selects a version's file by ID, or its first file when the ID
// is empty.
func pickFile(v *fakeVersion, fileID string) *fakeFile {
	if fileID == "" {
		if len(v.files) == 0 {
			return nil
		}

		return v.files[0]
	}

	for _, file := range v.files {
		if file.id == fileID {
			return file
		}
	}

	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
