// Package static serves files from disk.
//
// A Root confines every lookup to one directory using os.Root. Files are
// streamed with http.ServeContent, which sets Content-Type, honours Range and
// If-Modified-Since, and the file is closed once the response is written.
// Directory listings are never produced.
//
//	root, err := static.NewRoot("static")
//	if err != nil {
//		return err
//	}
//	defer root.Close()
//
//	r.Get("/secured/{path...}", static.Dir[*router.Context](root, "path"))
//	r.Get("/form", static.File[*router.Context]("static/form.html"))
//
// Missing files, directories, and paths that would leave the root all fail with
// ErrFileNotFound, which implements StatusCode() and answers 404.
package static
