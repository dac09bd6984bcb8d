// Package s3 serves route tables stored in Amazon S3 or an S3-compatible
// service such as MinIO.
//
// Source implements routefile.Source, so a router can be built straight
// from an object:
//
//	var cfg s3.Config
//	config.MustLoad(&cfg)
//
//	src, err := s3.New(ctx, cfg, s3.WithTimeout(5*time.Second))
//	if err != nil {
//		return err
//	}
//
//	table, err := routefile.Load(ctx, src)
//	if err != nil {
//		return err
//	}
//	router, err := table.Router()
//
// The object key's extension picks YAML or JSON. Errors are classified into
// the package sentinels (ErrObjectNotFound, ErrAccessDenied and so on) so
// callers can decide whether to keep the previous table.
package s3
