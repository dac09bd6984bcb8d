// Package binder builds route decoders that turn a matched parameter map into
// an application struct.
//
// Struct maps keys onto fields by their `param` tag:
//
//	type Comment struct {
//		PostID    int     `param:"postId"`
//		CommentID string  `param:"commentId"`
//		Source    *string `param:"source"`
//		Tags      []int   `param:"tags,omitempty"`
//		Internal  string  `param:"-"`
//	}
//
//	router.MustRegister("/newsfeed/:postId{int}/comment/:commentId/?:source{string?}&:tags{[int]?}", binder.Struct[Comment]())
//
// Fields without a tag name use their lower-cased name. Every other field is
// required: a missing key fails the decoder, so the router moves on to the
// next registration. Pointer and interface fields, and fields tagged
// `omitempty`, stay unset when the key is absent, which suits optional query
// params. Values must fit
// the field kind: an int param fills any integer or float field, a string
// param fills a string field, a bool param fills a bool field and an array
// param fills a slice. A mismatch fails with ErrFailedToBind.
//
// JSON takes the longer route of encoding the map and decoding it into the
// target, which lets existing `json` tags drive the mapping. The same
// required-field rule applies, read from the `json` tags:
//
//	router.MustRegister("/user/?:name", binder.JSON[User]())
//
// Both helpers return plain functions, so they convert to deeplink.Decoder
// without wrapping.
package binder
