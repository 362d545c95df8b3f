package domain

// Exporter hands converted records to a downstream writer.
type Exporter interface {
	Export(source SourceName, proxies []Proxy) error
}
