// Package bindist is a client for the BinDist binary-distribution API.
//
// A Client wraps a single API endpoint and key. Authenticated endpoints all
// answer with the same JSON envelope — {success, data, error, meta} — which
// the client decodes into a Result without ever treating an application-level
// failure as a Go error: callers branch on Result.Success. Only transport
// failures, checksum mismatches, and missing pre-signed URL data surface as
// errors, because those cannot be acted on by inspecting an envelope.
//
// Artifact bytes never travel through the authenticated API. Uploads above
// SmallUploadMaxSize run the three-step flow (request a pre-signed URL, PUT
// the bytes to storage, notify completion) and downloads fetch from a
// pre-signed URL resolved per request. Both directions anchor integrity to a
// SHA-256 digest of the bytes held in memory.
//
//	client := bindist.NewClient("https://api.bindist.eu", apiKey, nil, nil)
//
//	res, err := client.UploadLargeFile(ctx, bindist.Upload{
//		ApplicationID: "my-app",
//		Version:       "1.4.0",
//		FileName:      "my-app-linux-amd64.tar.gz",
//		Content:       artifact,
//	})
//	if err != nil {
//		// transport failure
//	}
//	if !res.Success {
//		// API rejected the upload; see res.Error
//	}
//
//	content, meta, err := client.DownloadFile(ctx, "my-app", "1.4.0", bindist.DownloadOptions{})
package bindist
