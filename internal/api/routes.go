package api

import (
	"strconv"

	"github.com/phrazzld/bilemo-api/internal/hateoas"
)

// Route names used to build links.
const (
	RouteProductList   = "product_list"
	RouteProductShow   = "product_show"
	RouteProductCreate = "product_create"
	RouteProductUpdate = "product_update"
	RouteProductDelete = "product_delete"

	RouteUserList   = "user_list"
	RouteUserShow   = "user_show"
	RouteUserCreate = "user_create"
	RouteUserDelete = "user_delete"

	RouteClientUsers = "client_users"
	RouteClientShow  = "client_show"

	RouteAuthToken = "auth_token"
)

// Routes is the table every link is resolved from. Templates mirror the
// paths registered in RegisterRoutes.
var Routes = hateoas.NewRouteTable(map[string]string{
	RouteProductList:   "/api/products",
	RouteProductShow:   "/api/products/{id}",
	RouteProductCreate: "/api/products",
	RouteProductUpdate: "/api/products/{id}",
	RouteProductDelete: "/api/products/{id}",

	RouteUserList:   "/api/users",
	RouteUserShow:   "/api/users/{id}",
	RouteUserCreate: "/api/users",
	RouteUserDelete: "/api/users/{id}",

	RouteClientUsers: "/api/client/{clientId}",
	RouteClientShow:  "/api/clients/{clientId}",

	RouteAuthToken: "/api/auth/token",
})

func idParams(id int64) hateoas.Params {
	return hateoas.Params{"id": strconv.FormatInt(id, 10)}
}

func clientParams(clientID int64) hateoas.Params {
	return hateoas.Params{"clientId": strconv.FormatInt(clientID, 10)}
}

func productRelations(p ProductResponse) hateoas.Relations {
	return hateoas.Relations{
		"self":   {Name: RouteProductShow, Params: idParams(p.ID)},
		"list":   {Name: RouteProductList},
		"update": {Name: RouteProductUpdate, Params: idParams(p.ID)},
		"delete": {Name: RouteProductDelete, Params: idParams(p.ID)},
	}
}

func productItemRelations(p ProductResponse) hateoas.Relations {
	return hateoas.Relations{
		"self": {Name: RouteProductShow, Params: idParams(p.ID)},
		"list": {Name: RouteProductList},
	}
}

func userRelations(u UserResponse) hateoas.Relations {
	return hateoas.Relations{
		"self":   {Name: RouteUserShow, Params: idParams(u.ID)},
		"list":   {Name: RouteClientUsers, Params: clientParams(u.ClientID)},
		"delete": {Name: RouteUserDelete, Params: idParams(u.ID)},
		"client": {Name: RouteClientShow, Params: clientParams(u.ClientID)},
	}
}

func userItemRelations(u UserResponse) hateoas.Relations {
	return hateoas.Relations{
		"self": {Name: RouteUserShow, Params: idParams(u.ID)},
		"list": {Name: RouteClientUsers, Params: clientParams(u.ClientID)},
	}
}

func clientRelations(c ClientResponse) hateoas.Relations {
	return hateoas.Relations{
		"self":  {Name: RouteClientShow, Params: clientParams(c.ID)},
		"users": {Name: RouteClientUsers, Params: clientParams(c.ID)},
	}
}
