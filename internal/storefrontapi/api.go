package storefrontapi

// Init registers every storefront route on the web server. webserver.Init
// must run first.
func Init() {
	registerHealthRoutes()
	registerCatalogRoutes()
	registerImageRoutes()
}
