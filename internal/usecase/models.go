package usecase

import "time"

// ORDER USECASE

// CreateOrderReq — запрос оформления заказа с формы чекаута.
// Форма валидируется один раз на границе: неизвестные и неполные
// поля отбрасываются до запуска бизнес-логики.
type CreateOrderReq struct {
	FullName   string
	Address    string
	Phone      string
	Items      []OrderItemReq
	TotalPrice int64 // заявленная клиентом сумма в миллимах
}

// OrderItemReq — позиция заказа в запросе чекаута.
type OrderItemReq struct {
	ProductID string
	Quantity  int64
}

// PRODUCT USECASE

// SaveProductReq — запрос на создание или обновление товара из админской формы.
type SaveProductReq struct {
	Name        string
	Description string
	Price       int64 // в миллимах
	ImageURL    string
	ImageURL2   *string
	ImageURL3   *string
	Stock       int32
}

// TranslationRes — локализованные варианты названия и описания товара.
type TranslationRes struct {
	NameEn        string
	NameAr        string
	DescriptionEn string
	DescriptionAr string
}

// INFRASTRUCTURE

// ProductImage представляет изображение, загруженное через multipart/form-data.
type ProductImage struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// ProductImageObject — объект изображения для загрузки в S3-хранилище.
type ProductImageObject struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	Size      int64
	MimeType  string
}

// UploadImagesReq — запрос на загрузку изображений товара.
type UploadImagesReq struct {
	ProductName string
	Images      []ProductImage
}

// UploadImagesRes — результат загрузки изображений (ключи объектов в MinIO).
type UploadImagesRes struct {
	ImagesKeys []string
}

type WriteRawMessageReq struct {
	AggregateID string
	Payload     []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	OrderCreatedEvent   OutboxEventType = "order.created"
	ProductCreatedEvent OutboxEventType = "product.created"
	ProductUpdatedEvent OutboxEventType = "product.updated"
	ProductDeletedEvent OutboxEventType = "product.deleted"
)

// OutboxEvent — интеграционное событие, записываемое в одной транзакции
// с изменением данных и публикуемое воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID string
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewCreateOrderReq(fullName, address, phone string, items []OrderItemReq, totalPrice int64) *CreateOrderReq {
	return &CreateOrderReq{
		FullName:   fullName,
		Address:    address,
		Phone:      phone,
		Items:      items,
		TotalPrice: totalPrice,
	}
}

func NewSaveProductReq(name, description string, price int64, imageURL string, imageURL2, imageURL3 *string, stock int32) *SaveProductReq {
	return &SaveProductReq{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
		ImageURL2:   imageURL2,
		ImageURL3:   imageURL3,
		Stock:       stock,
	}
}

func NewTranslationRes(nameEn, nameAr, descEn, descAr string) *TranslationRes {
	return &TranslationRes{
		NameEn:        nameEn,
		NameAr:        nameAr,
		DescriptionEn: descEn,
		DescriptionAr: descAr,
	}
}

func NewProductImage(data []byte, mimeType string, size int64, name string) *ProductImage {
	return &ProductImage{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewProductImageObject(id, bucket, objectKey string, bytes []byte, size int64, mimeType string) *ProductImageObject {
	return &ProductImageObject{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     bytes,
		Size:      size,
		MimeType:  mimeType,
	}
}

func NewUploadImagesReq(productName string, images []ProductImage) *UploadImagesReq {
	return &UploadImagesReq{
		ProductName: productName,
		Images:      images,
	}
}

func NewUploadImagesRes(imagesKeys []string) *UploadImagesRes {
	return &UploadImagesRes{
		ImagesKeys: imagesKeys,
	}
}

func NewWriteRawMessageReq(aggregateID string, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		AggregateID: aggregateID,
		Payload:     payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, aggregateID string, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:     eventID,
		EventType:   eventType,
		AggregateID: aggregateID,
		Payload:     payload,
		Status:      Pending,
		CreatedAt:   time.Now().UTC(),
	}
}
