//go:generate mockgen -source=../catalog_store.go        -destination=./mock_catalog_store.go        -package=mocks
//go:generate mockgen -source=../cache_store.go          -destination=./mock_cache_store.go          -package=mocks
//go:generate mockgen -source=../metrics_sink.go         -destination=./mock_metrics_sink.go         -package=mocks
//go:generate mockgen -source=../logger.go               -destination=./mock_logger.go               -package=mocks
//go:generate mockgen -source=../catalog_read_service.go -destination=./mock_catalog_read_service.go -package=mocks

package mocks
