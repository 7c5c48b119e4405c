package receipt

import "github.com/MohamedAbdelhakem17/goo-cast-reservation-system-sub001/pkg/dbmetrics"

// DBExecutor интерфейс для работы с БД (*sql.DB или *dbmetrics.DB)
type DBExecutor = dbmetrics.DBExecutor
