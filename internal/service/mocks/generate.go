package mocks

//go:generate go run go.uber.org/mock/mockgen -destination=mock_catalog.go -package=mocks github.com/jjbmsda/ott-mood-app/internal/service Catalog
