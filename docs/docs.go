// Package docs 注册 swagger 文档
// 内容与 api 包中的 swag 注释一一对应，修改接口注释后需同步更新（或用 swag init 重新生成）
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/categories": {
            "get": {
                "produces": ["application/json"],
                "description": "按名称升序返回全部类别",
                "tags": ["消费类别"],
                "summary": "获取消费类别列表",
                "responses": {
                    "200": {
                        "description": "获取成功",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Category"}}
                    }
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "description": "名称必填且唯一（区分大小写）；color 缺省为 #3498db",
                "tags": ["消费类别"],
                "summary": "创建消费类别",
                "parameters": [
                    {
                        "description": "类别信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.CategoryRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "创建成功", "schema": {"$ref": "#/definitions/models.Category"}},
                    "400": {"description": "参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "类别名称已存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/categories/{id}": {
            "delete": {
                "produces": ["application/json"],
                "description": "在同一事务中删除类别以及引用它的全部消费记录",
                "tags": ["消费类别"],
                "summary": "删除消费类别",
                "parameters": [
                    {"type": "integer", "description": "类别ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "类别不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/expenses": {
            "get": {
                "description": "支持按年、月、类别筛选，按日期倒序分页返回；total 为忽略分页的匹配总数",
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "获取消费记录列表",
                "parameters": [
                    {"type": "integer", "description": "年份", "name": "year", "in": "query"},
                    {"type": "integer", "description": "月份 (1-12)", "name": "month", "in": "query"},
                    {"type": "integer", "description": "类别ID", "name": "category_id", "in": "query"},
                    {"type": "integer", "default": 50, "description": "每页数量", "name": "limit", "in": "query"},
                    {"type": "integer", "default": 0, "description": "偏移量", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/api.ExpenseListResponse"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "description": "title 与 amount 必填；date 缺省为当天；category_id 必须指向已存在的类别",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "创建消费记录",
                "parameters": [
                    {
                        "description": "消费记录信息",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ExpenseRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "创建成功", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "类别不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/expenses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "获取单条消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "put": {
                "description": "局部更新，只修改请求体中出现的字段；category_id 传 null 表示取消类别",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "更新消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "需要修改的字段",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/api.ExpenseRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "更新成功", "schema": {"$ref": "#/definitions/models.Expense"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "记录或类别不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["消费记录"],
                "summary": "删除消费记录",
                "parameters": [
                    {"type": "integer", "description": "消费记录ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "删除成功", "schema": {"$ref": "#/definitions/api.MessageResponse"}},
                    "404": {"description": "记录不存在", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/export/csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["导出"],
                "summary": "导出消费记录为 CSV",
                "parameters": [
                    {"type": "integer", "description": "年份", "name": "year", "in": "query"},
                    {"type": "integer", "description": "月份 (1-12)", "name": "month", "in": "query"},
                    {"type": "integer", "description": "类别ID", "name": "category_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "CSV 文件", "schema": {"type": "file"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/export/excel": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["导出"],
                "summary": "导出消费记录为 Excel",
                "parameters": [
                    {"type": "integer", "description": "年份", "name": "year", "in": "query"},
                    {"type": "integer", "description": "月份 (1-12)", "name": "month", "in": "query"},
                    {"type": "integer", "description": "类别ID", "name": "category_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Excel 文件", "schema": {"type": "file"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/summary": {
            "get": {
                "description": "统计指定年月的总额、按类别合计（按金额降序）以及未分类合计；缺省为当前年月",
                "produces": ["application/json"],
                "tags": ["统计"],
                "summary": "获取月度汇总",
                "parameters": [
                    {"type": "integer", "description": "年份", "name": "year", "in": "query"},
                    {"type": "integer", "description": "月份 (1-12)", "name": "month", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "获取成功", "schema": {"$ref": "#/definitions/service.Summary"}},
                    "400": {"description": "请求参数错误", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.CategoryRequest": {
            "type": "object",
            "properties": {
                "color": {"type": "string", "example": "#e74c3c"},
                "name": {"type": "string", "example": "Food"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "'amount' must be a positive number"}
            }
        },
        "api.ExpenseListResponse": {
            "type": "object",
            "properties": {
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/models.Expense"}},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "api.ExpenseRequest": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 12.5},
                "category_id": {"type": "integer", "example": 1},
                "date": {"type": "string", "example": "2024-01-15"},
                "note": {"type": "string", "example": "with friends"},
                "title": {"type": "string", "example": "Lunch"}
            }
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Expense 'Lunch' deleted"}
            }
        },
        "models.Category": {
            "type": "object",
            "properties": {
                "color": {"type": "string", "example": "#3498db"},
                "id": {"type": "integer"},
                "name": {"type": "string", "example": "Food"}
            }
        },
        "models.Expense": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 12.5},
                "category": {"$ref": "#/definitions/models.Category"},
                "category_id": {"type": "integer"},
                "created_at": {"type": "string"},
                "date": {"type": "string", "example": "2024-01-15"},
                "id": {"type": "integer"},
                "note": {"type": "string"},
                "title": {"type": "string", "example": "Lunch"}
            }
        },
        "service.CategoryTotal": {
            "type": "object",
            "properties": {
                "category": {"type": "string"},
                "category_id": {"type": "integer"},
                "color": {"type": "string"},
                "total": {"type": "number"}
            }
        },
        "service.Summary": {
            "type": "object",
            "properties": {
                "by_category": {"type": "array", "items": {"$ref": "#/definitions/service.CategoryTotal"}},
                "month": {"type": "integer"},
                "total": {"type": "number"},
                "uncategorized": {"type": "number"},
                "year": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "个人记账 API",
	Description:      "消费记录、类别管理与月度汇总接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
