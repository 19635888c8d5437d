// Package drive wraps the Google Drive v3 API for file management: upload,
// listing and search, download, export of Workspace documents, folder
// creation, move/copy/delete, and permission management.
//
// Each Client is bound to one named account and authenticates with that
// account's stored OAuth token from the google package. Accounts without a
// token are detected up front with HasTokenForAccount so tool handlers can
// return authorization instructions instead of a raw API error.
//
//	client, err := drive.NewClientForAccount(ctx, "work")
//	if err != nil {
//		return err
//	}
//	files, _, err := client.ListFiles(ctx, &drive.ListOptions{
//		Query:      "mimeType='application/vnd.google-apps.document'",
//		MaxResults: 10,
//	})
package drive
