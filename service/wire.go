package service

import (
	"Pointly/dao"

	"github.com/google/wire"
)

// dao 对 store 接口的编译期契约检查
var (
	_ LedgerStore = (*dao.Point)(nil)
	_ CardStore   = (*dao.Card)(nil)
	_ TaskStore   = (*dao.Task)(nil)
	_ UserStore   = (*dao.Users)(nil)
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(PointService), "*"),
	wire.Bind(new(IPointService), new(*PointService)),

	wire.Struct(new(CardService), "*"),
	wire.Bind(new(ICardService), new(*CardService)),

	wire.Struct(new(QueryService), "*"),
	wire.Bind(new(IQueryService), new(*QueryService)),

	wire.Struct(new(TaskService), "*"),
	wire.Bind(new(ITaskService), new(*TaskService)),

	wire.Struct(new(AuthService), "*"),
	wire.Bind(new(IAuthService), new(*AuthService)),

	wire.Struct(new(UserService), "*"),
	wire.Bind(new(IUserService), new(*UserService)),

	wire.Bind(new(LedgerStore), new(*dao.Point)),
	wire.Bind(new(CardStore), new(*dao.Card)),
	wire.Bind(new(TaskStore), new(*dao.Task)),
	wire.Bind(new(UserStore), new(*dao.Users)),
)
