package initializers

import (
	"context"
	"hr-admin-backend/config"
	"hr-admin-backend/fiberlog"
	assethandler "hr-admin-backend/lib/asset"
	categoryprovider "hr-admin-backend/lib/dicts/category"
	companyprovider "hr-admin-backend/lib/dicts/company"
	designationprovider "hr-admin-backend/lib/dicts/designation"
	employeehandler "hr-admin-backend/lib/employee"
	xlsexport "hr-admin-backend/lib/export/xls"
	filestorage "hr-admin-backend/lib/file-storage"
	cleanupworker "hr-admin-backend/lib/file-storage/cleanup-worker"
	kanbanhandler "hr-admin-backend/lib/kanban"
	overtimehandler "hr-admin-backend/lib/overtime"
	paysliphandler "hr-admin-backend/lib/payslip"
	promotionhandler "hr-admin-backend/lib/promotion"
	"hr-admin-backend/lib/rbac"
	reimbursementhandler "hr-admin-backend/lib/reimbursement"
	triphandler "hr-admin-backend/lib/trip"
	wshub "hr-admin-backend/lib/ws/hub"
	"hr-admin-backend/middleware"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	middleware.UploadLimit = config.Conf.App.UploadLimit
	InitDBConnection()
	InitS3()
	InitSmtp()
	wshub.Init()
	rbac.NewHandler()
	filestorage.NewHandler()
	xlsexport.NewHandler()
	companyprovider.NewHandler()
	categoryprovider.NewHandler()
	designationprovider.NewHandler()
	employeehandler.NewHandler()
	promotionhandler.NewHandler()
	overtimehandler.NewHandler()
	reimbursementhandler.NewHandler()
	paysliphandler.NewHandler()
	assethandler.NewHandler()
	triphandler.NewHandler()
	kanbanhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача удаления чеков, не попавших в заявку
	cleanupworker.StartWorker(ctx)
}
