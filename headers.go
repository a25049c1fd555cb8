package stride

const (
	// HeaderAccept specifies media types acceptable for the response.
	HeaderAccept = "Accept"

	// HeaderAllow lists the allowed methods for a resource.
	HeaderAllow = "Allow"

	// HeaderContentLength indicates the size of the message body.
	HeaderContentLength = "Content-Length"

	// HeaderContentType indicates the media type of the resource.
	HeaderContentType = "Content-Type"

	// HeaderLocation indicates the URL to redirect a page to.
	HeaderLocation = "Location"
)

// Content types written by the Context send helpers.
const (
	contentTypeJSON = "application/json"
	contentTypeXML  = "application/xml"
	contentTypeYAML = "application/x-yaml"
	contentTypeTOML = "application/toml"
	contentTypeCBOR = "application/cbor"
	contentTypeText = "text/plain; charset=utf-8"
)
